package app

import (
	"github.com/iov-one/paysplit"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler.
type Decorators struct {
	chain []paysplit.Decorator
}

// ChainDecorators takes a variable number of decorators and binds them
// together in one decorator chain. Nil entries are allowed and skipped,
// which makes conditional wiring easier.
func ChainDecorators(decorators ...paysplit.Decorator) Decorators {
	chain := make([]paysplit.Decorator, 0, len(decorators))
	for _, d := range decorators {
		if d != nil {
			chain = append(chain, d)
		}
	}
	return Decorators{chain: chain}
}

// WithHandler resolves the chain with a Handler at the end and returns a
// Handler that executes the whole stack.
func (d Decorators) WithHandler(h paysplit.Handler) paysplit.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decoratedHandler{d: d.chain[i], next: h}
	}
	return h
}

type decoratedHandler struct {
	d    paysplit.Decorator
	next paysplit.Handler
}

var _ paysplit.Handler = decoratedHandler{}

func (h decoratedHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	return h.d.Check(ctx, db, tx, h.next)
}

func (h decoratedHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	return h.d.Deliver(ctx, db, tx, h.next)
}
