package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/codec"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

// Serialization tags identify the type and schema version of each wire
// structure. Changing the field layout of a structure requires a new tag
// number.
const (
	splitterTag  codec.Tag = 0x535001
	createMsgTag codec.Tag = 0x535002
	updateMsgTag codec.Tag = 0x535003
	payMsgTag    codec.Tag = 0x535004
	payoutMsgTag codec.Tag = 0x535005
	deleteMsgTag codec.Tag = 0x535006
	configTag    codec.Tag = 0x535007
)

// Price is the exchange rate of a limit order, expressed as the ratio of
// two coin amounts in distinct assets.
type Price struct {
	_ struct{} `cbor:",toarray"`

	Base  coin.Coin `json:"base"`
	Quote coin.Coin `json:"quote"`
}

// Validate requires both sides to be positive amounts of distinct assets.
func (p Price) Validate() error {
	if err := p.Base.Validate(); err != nil {
		return errors.Wrap(err, "base")
	}
	if !p.Base.IsPositive() {
		return errors.Wrap(ErrBuybackPrice, "base must be positive")
	}
	if err := p.Quote.Validate(); err != nil {
		return errors.Wrap(err, "quote")
	}
	if !p.Quote.IsPositive() {
		return errors.Wrap(ErrBuybackPrice, "quote must be positive")
	}
	if p.Base.Ticker == p.Quote.Ticker {
		return errors.Wrap(ErrBuybackPrice, "base and quote assets must differ")
	}
	return nil
}

// MarketBuyback describes a target that converts its share into a limit
// buy order instead of a direct credit.
type MarketBuyback struct {
	_ struct{} `cbor:",toarray"`

	// AssetToBuy is the ticker of the asset the order acquires.
	AssetToBuy string `json:"asset_to_buy"`

	// LimitPrice caps the price the order may pay. Its quote side must
	// be denominated in AssetToBuy.
	LimitPrice Price `json:"limit_price"`
}

// Validate requires a well formed limit price quoted in the asset to buy.
func (b *MarketBuyback) Validate() error {
	if b == nil {
		return errors.Wrap(errors.ErrEmpty, "buyback")
	}
	if err := b.LimitPrice.Validate(); err != nil {
		return errors.Wrap(err, "limit price")
	}
	if b.LimitPrice.Quote.Ticker != b.AssetToBuy {
		return errors.Wrapf(ErrBuybackPrice, "quote asset %q does not match asset to buy %q",
			b.LimitPrice.Quote.Ticker, b.AssetToBuy)
	}
	return nil
}

// Target is a distribution recipient. Exactly one of the variants must
// be set. All code inspecting a target must go through Visit so that
// variant dispatch stays exhaustive.
type Target struct {
	_ struct{} `cbor:",toarray"`

	// Account receives its share as a direct balance credit.
	Account paysplit.Address `json:"account,omitempty"`

	// Buyback converts its share into a limit order.
	Buyback *MarketBuyback `json:"buyback,omitempty"`
}

// TargetVisitor dispatches on the target variant.
type TargetVisitor interface {
	VisitAccount(addr paysplit.Address) error
	VisitBuyback(b *MarketBuyback) error
}

// Visit calls the visitor method matching the variant set on this
// target. A target with no variant or both variants set is rejected.
func (t Target) Visit(v TargetVisitor) error {
	switch {
	case len(t.Account) != 0 && t.Buyback == nil:
		return v.VisitAccount(t.Account)
	case len(t.Account) == 0 && t.Buyback != nil:
		return v.VisitBuyback(t.Buyback)
	default:
		return errors.Wrap(errors.ErrState, "exactly one target variant must be set")
	}
}

// TargetWeight pairs a target with its relative share of each
// distribution.
type TargetWeight struct {
	_ struct{} `cbor:",toarray"`

	// Weight must be positive and fit in 16 bits.
	Weight int32 `json:"weight"`

	Target Target `json:"target"`
}

// Splitter is the persistent splitter entity.
type Splitter struct {
	_ struct{} `cbor:",toarray"`

	Metadata *paysplit.Metadata `json:"metadata"`

	// Owner may update the configuration, trigger payouts and delete the
	// splitter.
	Owner paysplit.Address `json:"owner"`

	// Targets receive the balance on distribution, ordered. The order is
	// part of the state, it decides remainder assignment.
	Targets []*TargetWeight `json:"targets"`

	// Balance is the amount accumulated since the last distribution. It
	// mirrors the funds held on the splitter account address.
	Balance coin.Coin `json:"balance"`

	// MinPayment and MaxPayment bound a single incoming payment. Their
	// ticker fixes the asset this splitter is denominated in.
	MinPayment coin.Coin `json:"min_payment"`
	MaxPayment coin.Coin `json:"max_payment"`

	// PayoutThreshold is the balance level at or above which an accepted
	// payment triggers an automatic distribution.
	PayoutThreshold coin.Coin `json:"payout_threshold"`
}

func (s *Splitter) Marshal() ([]byte, error) {
	return codec.MarshalTagged(splitterTag, s)
}

func (s *Splitter) Unmarshal(raw []byte) error {
	return codec.UnmarshalTagged(splitterTag, raw, s)
}

// CreateMsg allocates a new splitter. The fee is charged to Payer, who
// does not have to be the owner.
type CreateMsg struct {
	_ struct{} `cbor:",toarray"`

	Metadata        *paysplit.Metadata `json:"metadata"`
	Fee             coin.Coin          `json:"fee"`
	Payer           paysplit.Address   `json:"payer"`
	Owner           paysplit.Address   `json:"owner"`
	Targets         []*TargetWeight    `json:"targets"`
	MinPayment      coin.Coin          `json:"min_payment"`
	MaxPayment      coin.Coin          `json:"max_payment"`
	PayoutThreshold coin.Coin          `json:"payout_threshold"`
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return codec.MarshalTagged(createMsgTag, m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return codec.UnmarshalTagged(createMsgTag, raw, m)
}

// UpdateMsg replaces the configuration of an existing splitter. The
// balance is never touched. A set NewOwner transfers ownership.
type UpdateMsg struct {
	_ struct{} `cbor:",toarray"`

	Metadata        *paysplit.Metadata `json:"metadata"`
	Fee             coin.Coin          `json:"fee"`
	SplitterID      []byte             `json:"splitter_id"`
	Owner           paysplit.Address   `json:"owner"`
	NewOwner        paysplit.Address   `json:"new_owner,omitempty"`
	Targets         []*TargetWeight    `json:"targets"`
	MinPayment      coin.Coin          `json:"min_payment"`
	MaxPayment      coin.Coin          `json:"max_payment"`
	PayoutThreshold coin.Coin          `json:"payout_threshold"`
}

func (m *UpdateMsg) Marshal() ([]byte, error) {
	return codec.MarshalTagged(updateMsgTag, m)
}

func (m *UpdateMsg) Unmarshal(raw []byte) error {
	return codec.UnmarshalTagged(updateMsgTag, raw, m)
}

// PayMsg pays into a splitter, increasing its balance.
type PayMsg struct {
	_ struct{} `cbor:",toarray"`

	Metadata   *paysplit.Metadata `json:"metadata"`
	Fee        coin.Coin          `json:"fee"`
	SplitterID []byte             `json:"splitter_id"`
	Payer      paysplit.Address   `json:"payer"`
	Payment    coin.Coin          `json:"payment"`
}

func (m *PayMsg) Marshal() ([]byte, error) {
	return codec.MarshalTagged(payMsgTag, m)
}

func (m *PayMsg) Unmarshal(raw []byte) error {
	return codec.UnmarshalTagged(payMsgTag, raw, m)
}

// PayoutMsg distributes the accumulated balance on owner request. The
// payout fee is settled from the splitter balance, so the declared Fee
// is not required to cover it.
type PayoutMsg struct {
	_ struct{} `cbor:",toarray"`

	Metadata   *paysplit.Metadata `json:"metadata"`
	Fee        coin.Coin          `json:"fee"`
	SplitterID []byte             `json:"splitter_id"`
	Owner      paysplit.Address   `json:"owner"`
}

func (m *PayoutMsg) Marshal() ([]byte, error) {
	return codec.MarshalTagged(payoutMsgTag, m)
}

func (m *PayoutMsg) Unmarshal(raw []byte) error {
	return codec.UnmarshalTagged(payoutMsgTag, raw, m)
}

// DeleteMsg destroys a splitter with a zero balance.
type DeleteMsg struct {
	_ struct{} `cbor:",toarray"`

	Metadata   *paysplit.Metadata `json:"metadata"`
	Fee        coin.Coin          `json:"fee"`
	SplitterID []byte             `json:"splitter_id"`
	Owner      paysplit.Address   `json:"owner"`
}

func (m *DeleteMsg) Marshal() ([]byte, error) {
	return codec.MarshalTagged(deleteMsgTag, m)
}

func (m *DeleteMsg) Unmarshal(raw []byte) error {
	return codec.UnmarshalTagged(deleteMsgTag, raw, m)
}

// Configuration is the fee schedule of the splitter extension, stored as
// a gconf singleton.
type Configuration struct {
	_ struct{} `cbor:",toarray"`

	Metadata *paysplit.Metadata `json:"metadata"`

	// CollectorAddress receives all fees charged by this extension.
	CollectorAddress paysplit.Address `json:"collector_address"`

	// CreateFee and UpdateFee are the base fees of the size dependent
	// operations, extended by PricePerKbyte per started kilobyte of the
	// serialized message.
	CreateFee     coin.Coin `json:"create_fee"`
	UpdateFee     coin.Coin `json:"update_fee"`
	PricePerKbyte coin.Coin `json:"price_per_kbyte"`

	// PayFee, PayoutFee and DeleteFee are fixed. The payout fee is taken
	// out of the splitter balance, all others are charged to the signer.
	// PayoutFee fixes the numeric amount only: it is settled in the
	// asset of the balance it is deducted from.
	PayFee    coin.Coin `json:"pay_fee"`
	PayoutFee coin.Coin `json:"payout_fee"`
	DeleteFee coin.Coin `json:"delete_fee"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.MarshalTagged(configTag, c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.UnmarshalTagged(configTag, raw, c)
}
