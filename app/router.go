// Package app assembles the pieces of the transaction processing engine:
// a message router and the decorator chain around it.
package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// isPath ensures a valid routing path.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]{4,32}$`).MatchString

// Router maintains a handler for each message path and dispatches
// incoming transactions by the path of the message they carry.
type Router struct {
	routes map[string]paysplit.Handler
}

var _ paysplit.Registry = (*Router)(nil)
var _ paysplit.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]paysplit.Handler),
	}
}

// Handle implements Registry interface. It panics if a path is invalid or
// already registered, this is a setup time error, not a runtime one.
func (r *Router) Handle(path string, h paysplit.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this message path. If none
// is registered it returns a handler that always fails with ErrNotFound.
func (r *Router) handler(path string) paysplit.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	return r.handler(paysplit.GetPath(tx)).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	return r.handler(paysplit.GetPath(tx)).Deliver(ctx, db, tx)
}

// notFoundHandler always returns ErrNotFound for the path it was created
// with.
type notFoundHandler string

func (n notFoundHandler) Check(paysplit.Context, paysplit.KVStore, paysplit.Tx) (*paysplit.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(n))
}

func (n notFoundHandler) Deliver(paysplit.Context, paysplit.KVStore, paysplit.Tx) (*paysplit.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(n))
}
