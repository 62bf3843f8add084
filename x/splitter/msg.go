package splitter

import (
	"math"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

var _ paysplit.Msg = (*CreateMsg)(nil)
var _ paysplit.Msg = (*UpdateMsg)(nil)
var _ paysplit.Msg = (*PayMsg)(nil)
var _ paysplit.Msg = (*PayoutMsg)(nil)
var _ paysplit.Msg = (*DeleteMsg)(nil)

// Path implements the Msg interface.
func (CreateMsg) Path() string {
	return "splitter/create"
}

// Validate implements the Msg interface.
func (m *CreateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateFee(m.Fee); err != nil {
		return err
	}
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := validateTargets(m.Targets); err != nil {
		return err
	}
	return validateBounds(m.MinPayment, m.MaxPayment, m.PayoutThreshold)
}

// Path implements the Msg interface.
func (UpdateMsg) Path() string {
	return "splitter/update"
}

// Validate implements the Msg interface.
func (m *UpdateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateFee(m.Fee); err != nil {
		return err
	}
	if err := validateID(m.SplitterID); err != nil {
		return err
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(m.NewOwner) != 0 {
		if err := m.NewOwner.Validate(); err != nil {
			return errors.Wrap(err, "new owner")
		}
	}
	if err := validateTargets(m.Targets); err != nil {
		return err
	}
	return validateBounds(m.MinPayment, m.MaxPayment, m.PayoutThreshold)
}

// Path implements the Msg interface.
func (PayMsg) Path() string {
	return "splitter/pay"
}

// Validate implements the Msg interface.
func (m *PayMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateFee(m.Fee); err != nil {
		return err
	}
	if err := validateID(m.SplitterID); err != nil {
		return err
	}
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := m.Payment.Validate(); err != nil {
		return errors.Wrap(err, "payment")
	}
	if !m.Payment.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "payment must be positive")
	}
	return nil
}

// Path implements the Msg interface.
func (PayoutMsg) Path() string {
	return "splitter/payout"
}

// Validate implements the Msg interface.
func (m *PayoutMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateFee(m.Fee); err != nil {
		return err
	}
	if err := validateID(m.SplitterID); err != nil {
		return err
	}
	return errors.Wrap(m.Owner.Validate(), "owner")
}

// Path implements the Msg interface.
func (DeleteMsg) Path() string {
	return "splitter/delete"
}

// Validate implements the Msg interface.
func (m *DeleteMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateFee(m.Fee); err != nil {
		return err
	}
	if err := validateID(m.SplitterID); err != nil {
		return err
	}
	return errors.Wrap(m.Owner.Validate(), "owner")
}

func validateFee(fee coin.Coin) error {
	if err := fee.Validate(); err != nil {
		return errors.Wrap(err, "fee")
	}
	if !fee.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "fee cannot be negative")
	}
	return nil
}

func validateID(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "splitter id")
	}
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "splitter id must be 8 bytes, got %d", len(id))
	}
	return nil
}

// validateTargets ensures a usable target list: non empty, bounded in
// size, every weight positive and every target internally consistent.
func validateTargets(targets []*TargetWeight) error {
	if len(targets) == 0 {
		return errors.Wrap(errors.ErrEmpty, "targets")
	}
	if len(targets) > maxTargets {
		return errors.Wrapf(errors.ErrMsg, "too many targets, %d allowed", maxTargets)
	}
	for i, tw := range targets {
		if tw == nil {
			return errors.Wrapf(errors.ErrEmpty, "target #%d", i)
		}
		if tw.Weight <= 0 || tw.Weight > maxWeight {
			return errors.Wrapf(ErrInvalidWeight, "target #%d", i)
		}
		if err := tw.Target.Visit(targetValidator{}); err != nil {
			return errors.Wrapf(err, "target #%d", i)
		}
	}
	return nil
}

// targetValidator is the validation call site of the target union.
type targetValidator struct{}

var _ TargetVisitor = targetValidator{}

func (targetValidator) VisitAccount(addr paysplit.Address) error {
	return errors.Wrap(addr.Validate(), "account")
}

func (targetValidator) VisitBuyback(b *MarketBuyback) error {
	return b.Validate()
}

// validateBounds ensures the payment bounds and the threshold form a
// consistent policy, all denominated in one asset.
func validateBounds(min, max, threshold coin.Coin) error {
	if err := min.Validate(); err != nil {
		return errors.Wrap(err, "min payment")
	}
	if !min.IsPositive() {
		return errors.Wrap(ErrInvalidBounds, "min payment must be positive")
	}
	if err := max.Validate(); err != nil {
		return errors.Wrap(err, "max payment")
	}
	if max.Ticker != min.Ticker {
		return errors.Wrap(ErrAssetMismatch, "max payment")
	}
	if !max.IsGTE(min) {
		return errors.Wrap(ErrInvalidBounds, "min payment greater than max payment")
	}
	if err := threshold.Validate(); err != nil {
		return errors.Wrap(err, "payout threshold")
	}
	if threshold.Ticker != min.Ticker {
		return errors.Wrap(ErrAssetMismatch, "payout threshold")
	}
	if !threshold.IsNonNegative() {
		return errors.Wrap(ErrInvalidThreshold, "payout threshold cannot be negative")
	}
	return nil
}

const (
	// maxTargets caps the target list length so that a single payout
	// cannot consume unbounded resources.
	maxTargets = 200

	// maxWeight keeps every weight within 16 bits, so the weight sum of
	// a full target list stays far from the int64 range.
	maxWeight = math.MaxUint16
)
