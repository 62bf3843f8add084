package utils

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Recovery is a decorator that turns panics in the rest of the stack
// into normal errors.
type Recovery struct{}

var _ paysplit.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Checker) (_ *paysplit.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (r Recovery) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Deliverer) (_ *paysplit.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
