package paysplit

import (
	"github.com/iov-one/paysplit/coin"
)

// CheckResult captures any non-error, abci result from the preliminary
// validation of a transaction.
type CheckResult struct {
	// GasAllocated is an estimate of the processing cost, used by the
	// external engine for prioritization and spam protection.
	GasAllocated int64

	// RequiredFee is the fee the transaction must declare in order to be
	// processed. Zero value means no minimum is enforced.
	RequiredFee coin.Coin
}

// DeliverResult captures any non-error, abci result from the final
// delivery of a transaction.
type DeliverResult struct {
	// Data is request specific, for example the key of a newly created
	// entity.
	Data []byte

	// Log is a free-form text for debugging, never interpreted.
	Log string

	// GasUsed is the processing cost of the applied transition.
	GasUsed int64

	// RequiredFee is the fee that was enforced while delivering.
	RequiredFee coin.Coin
}
