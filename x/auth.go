// Package x holds the interfaces shared by the extension packages.
package x

import (
	"github.com/iov-one/paysplit"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed in the constructor of handlers,
// so we can plug in another authentication system besides signature
// verification.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled by the transaction,
	// to be used in authorization checks.
	GetConditions(paysplit.Context) []paysplit.Condition

	// HasAddress checks if any condition matches this address.
	HasAddress(paysplit.Context, paysplit.Address) bool
}

// MultiAuth chains together many Authenticators.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together many Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

// GetConditions combines all conditions from all chained authenticators.
func (m MultiAuth) GetConditions(ctx paysplit.Context) []paysplit.Condition {
	var res []paysplit.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true if any chained authenticator approves.
func (m MultiAuth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition fulfilled by the transaction, or
// nil if there are none.
func MainSigner(ctx paysplit.Context, auth Authenticator) paysplit.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all given addresses are fulfilled by
// the transaction.
func HasAllAddresses(ctx paysplit.Context, auth Authenticator, required []paysplit.Address) bool {
	for _, addr := range required {
		if !auth.HasAddress(ctx, addr) {
			return false
		}
	}
	return true
}
