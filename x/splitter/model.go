package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

var _ orm.Model = (*Splitter)(nil)

// Validate implements the orm Model interface.
func (s *Splitter) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := s.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := validateTargets(s.Targets); err != nil {
		return err
	}
	if err := validateBounds(s.MinPayment, s.MaxPayment, s.PayoutThreshold); err != nil {
		return err
	}
	if err := s.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	if s.Balance.Ticker != s.MinPayment.Ticker {
		return errors.Wrap(ErrAssetMismatch, "balance")
	}
	if !s.Balance.IsNonNegative() {
		return errors.Wrap(errors.ErrState, "balance cannot be negative")
	}
	return nil
}

// NewSplitterBucket returns a bucket for keeping splitters, with ids
// assigned by a sequence.
func NewSplitterBucket() orm.ModelBucket {
	return orm.NewModelBucket("splitter", &Splitter{},
		orm.WithIDSequence(splitterSeq),
	)
}

// splitterSeq assigns splitter ids.
var splitterSeq = orm.NewSequence("splitter", "id")

// SplitterAccount returns the address of the account holding the funds
// accumulated by the splitter with given id. No private key exists for
// this address, only a payout can move the funds out.
func SplitterAccount(splitterID []byte) paysplit.Address {
	return paysplit.NewCondition("splitter", "account", splitterID).Address()
}
