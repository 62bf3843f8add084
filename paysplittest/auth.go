package paysplittest

import (
	"context"

	"github.com/iov-one/paysplit"
)

// Auth is a mock implementing the authenticator interface. It authorizes
// exactly the conditions it was configured with.
type Auth struct {
	// Signer is returned by GetConditions. Ignored if nil.
	Signer paysplit.Condition

	// Signers are returned by GetConditions together with Signer.
	Signers []paysplit.Condition
}

func (a *Auth) GetConditions(paysplit.Context) []paysplit.Condition {
	var conds []paysplit.Condition
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return append(conds, a.Signers...)
}

func (a *Auth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}

// CtxAuth is an authenticator that reads conditions from the context.
type CtxAuth struct {
	// Key is used to set and read conditions from the context.
	Key string
}

type contextKey string

func (a *CtxAuth) SetConditions(ctx paysplit.Context, conds ...paysplit.Condition) paysplit.Context {
	return context.WithValue(ctx, contextKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx paysplit.Context) []paysplit.Condition {
	conds, ok := ctx.Value(contextKey(a.Key)).([]paysplit.Condition)
	if !ok {
		return nil
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
