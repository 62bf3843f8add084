package utils

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Savepoint wraps the rest of the stack in a cache of the store. On an
// error the cache is discarded, so a rejected operation leaves no
// observable mutation behind.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ paysplit.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator. Call OnCheck and/or
// OnDeliver to select which phases it isolates.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that triggers on the check phase.
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{
		onCheck:   true,
		onDeliver: s.onDeliver,
	}
}

// OnDeliver returns a savepoint that triggers on the deliver phase.
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{
		onCheck:   s.onCheck,
		onDeliver: true,
	}
}

// Check runs the rest of the stack against a store cache and commits it
// only on success.
func (s Savepoint) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Checker) (*paysplit.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}

	cdb, ok := db.(paysplit.CacheableKVStore)
	if !ok {
		return next.Check(ctx, db, tx)
	}

	cache := cdb.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}

// Deliver runs the rest of the stack against a store cache and commits
// it only on success.
func (s Savepoint) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Deliverer) (*paysplit.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}

	cdb, ok := db.(paysplit.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, db, tx)
	}

	cache := cdb.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
