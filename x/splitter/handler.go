package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
	"github.com/iov-one/paysplit/x"
)

const (
	createSplitterCost int64 = 100
	updateSplitterCost int64 = 50
	paySplitterCost    int64 = 50
	payoutSplitterCost int64 = 10
	deleteSplitterCost int64 = 10

	// distribution cost scales with the target list
	distributeTargetCost int64 = 20
)

// CashController allows the splitter to move funds between accounts. It
// is implemented by the cash extension controller.
type CashController interface {
	MoveCoins(db paysplit.KVStore, src, dest paysplit.Address, amount coin.Coin) error
}

// Marketplace is the market collaborator that accepts buyback funding.
// Placing an order must either rest it on the book or fill it, it never
// returns the funds.
type Marketplace interface {
	PlaceOrIncreaseLimitOrder(db paysplit.KVStore, funder paysplit.Address, assetToBuy string, limitPrice Price, funding coin.Coin) error
}

// RegisterRoutes will instantiate and register all handlers of this
// extension.
func RegisterRoutes(r paysplit.Registry, auth x.Authenticator, ctrl CashController, market Marketplace) {
	bucket := NewSplitterBucket()
	r.Handle("splitter/create", &createHandler{auth: auth, bucket: bucket, ctrl: ctrl})
	r.Handle("splitter/update", &updateHandler{auth: auth, bucket: bucket, ctrl: ctrl})
	r.Handle("splitter/pay", &payHandler{auth: auth, bucket: bucket, ctrl: ctrl, market: market})
	r.Handle("splitter/payout", &payoutHandler{auth: auth, bucket: bucket, ctrl: ctrl, market: market})
	r.Handle("splitter/delete", &deleteHandler{auth: auth, bucket: bucket, ctrl: ctrl})
}

// coversFee ensures the fee declared by the message is enough to settle
// the required fee, in the right asset.
func coversFee(declared, required coin.Coin) error {
	if required.IsZero() {
		return nil
	}
	if declared.Ticker != required.Ticker {
		return errors.Wrapf(ErrAssetMismatch, "fee must be paid in %s", required.Ticker)
	}
	if !declared.IsGTE(required) {
		return errors.Wrapf(errors.ErrAmount, "declared fee below required %s", required)
	}
	return nil
}

// chargeFee moves the declared fee from the payer to the fee collector.
// A zero fee is a no-op.
func chargeFee(db paysplit.KVStore, ctrl CashController, conf Configuration, payer paysplit.Address, fee coin.Coin) error {
	if fee.IsZero() {
		return nil
	}
	if err := ctrl.MoveCoins(db, payer, conf.CollectorAddress, fee); err != nil {
		return errors.Wrap(err, "cannot charge fee")
	}
	return nil
}

// runPayout settles the payout fee from the splitter balance, distributes
// the remainder over the targets and resets the balance to zero. The
// caller is responsible for persisting the splitter afterwards.
func runPayout(db paysplit.KVStore, ctrl CashController, market Marketplace, conf Configuration, splitterID []byte, s *Splitter) error {
	fee := payoutFee(conf, s.Balance.Ticker)
	if !s.Balance.IsGTE(fee) {
		return errors.Wrapf(ErrInsufficientBalance, "balance %s, fee %s", s.Balance, fee)
	}

	acct := SplitterAccount(splitterID)
	if fee.IsPositive() {
		if err := ctrl.MoveCoins(db, acct, conf.CollectorAddress, fee); err != nil {
			return errors.Wrap(err, "cannot settle payout fee")
		}
	}

	remainder, err := s.Balance.Subtract(fee)
	if err != nil {
		return errors.Wrap(err, "remainder")
	}
	if remainder.IsPositive() {
		shares, err := Distribute(remainder, s.Targets)
		if err != nil {
			return errors.Wrap(err, "cannot distribute")
		}
		for i, share := range shares {
			if share.IsZero() {
				continue
			}
			d := &disburser{db: db, ctrl: ctrl, market: market, funder: acct, amount: share}
			if err := s.Targets[i].Target.Visit(d); err != nil {
				return errors.Wrapf(err, "target #%d", i)
			}
		}
	}

	s.Balance = coin.NewCoin(0, 0, s.Balance.Ticker)
	return nil
}

// disburser is the disbursement call site of the target union.
type disburser struct {
	db     paysplit.KVStore
	ctrl   CashController
	market Marketplace
	funder paysplit.Address
	amount coin.Coin
}

var _ TargetVisitor = (*disburser)(nil)

func (d *disburser) VisitAccount(addr paysplit.Address) error {
	return d.ctrl.MoveCoins(d.db, d.funder, addr, d.amount)
}

func (d *disburser) VisitBuyback(b *MarketBuyback) error {
	return d.market.PlaceOrIncreaseLimitOrder(d.db, d.funder, b.AssetToBuy, b.LimitPrice, d.amount)
}

// --- create ---

type createHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   CashController
}

var _ paysplit.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	required, err := dataFee(conf.CreateFee, conf.PricePerKbyte, msg)
	if err != nil {
		return nil, err
	}
	res := paysplit.CheckResult{
		GasAllocated: createSplitterCost + int64(len(msg.Targets))*distributeTargetCost,
		RequiredFee:  required,
	}
	return &res, nil
}

func (h *createHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := chargeFee(db, h.ctrl, conf, msg.Payer, msg.Fee); err != nil {
		return nil, err
	}

	s := Splitter{
		Metadata:        msg.Metadata.Copy(),
		Owner:           msg.Owner,
		Targets:         msg.Targets,
		Balance:         coin.NewCoin(0, 0, msg.MinPayment.Ticker),
		MinPayment:      msg.MinPayment,
		MaxPayment:      msg.MaxPayment,
		PayoutThreshold: msg.PayoutThreshold,
	}
	id, err := h.bucket.Put(db, nil, &s)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store splitter")
	}
	return &paysplit.DeliverResult{Data: id}, nil
}

func (h *createHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*CreateMsg, Configuration, error) {
	var msg CreateMsg
	var conf Configuration
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, conf, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, conf, err
	}
	required, err := dataFee(conf.CreateFee, conf.PricePerKbyte, &msg)
	if err != nil {
		return nil, conf, err
	}
	if err := coversFee(msg.Fee, required); err != nil {
		return nil, conf, err
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, conf, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	return &msg, conf, nil
}

// --- update ---

type updateHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   CashController
}

var _ paysplit.Handler = (*updateHandler)(nil)

func (h *updateHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	msg, conf, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	required, err := dataFee(conf.UpdateFee, conf.PricePerKbyte, msg)
	if err != nil {
		return nil, err
	}
	res := paysplit.CheckResult{
		GasAllocated: updateSplitterCost + int64(len(msg.Targets))*distributeTargetCost,
		RequiredFee:  required,
	}
	return &res, nil
}

func (h *updateHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, conf, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := chargeFee(db, h.ctrl, conf, s.Owner, msg.Fee); err != nil {
		return nil, err
	}

	if len(msg.NewOwner) != 0 {
		s.Owner = msg.NewOwner
	}
	s.Targets = msg.Targets
	s.MinPayment = msg.MinPayment
	s.MaxPayment = msg.MaxPayment
	s.PayoutThreshold = msg.PayoutThreshold

	if _, err := h.bucket.Put(db, msg.SplitterID, s); err != nil {
		return nil, errors.Wrap(err, "cannot store splitter")
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *updateHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*UpdateMsg, Configuration, *Splitter, error) {
	var msg UpdateMsg
	var conf Configuration
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, conf, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, conf, nil, err
	}
	required, err := dataFee(conf.UpdateFee, conf.PricePerKbyte, &msg)
	if err != nil {
		return nil, conf, nil, err
	}
	if err := coversFee(msg.Fee, required); err != nil {
		return nil, conf, nil, err
	}

	var s Splitter
	if err := h.bucket.One(db, msg.SplitterID, &s); err != nil {
		return nil, conf, nil, errors.Wrap(err, "cannot load splitter")
	}
	if !msg.Owner.Equals(s.Owner) {
		return nil, conf, nil, errors.Wrap(errors.ErrUnauthorized, "owner mismatch")
	}
	if !h.auth.HasAddress(ctx, s.Owner) {
		return nil, conf, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	// The accumulated balance must stay spendable with the new bounds.
	if msg.MinPayment.Ticker != s.Balance.Ticker {
		return nil, conf, nil, errors.Wrap(ErrAssetMismatch, "new bounds must keep the balance asset")
	}
	return &msg, conf, &s, nil
}

// --- pay ---

type payHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   CashController
	market Marketplace
}

var _ paysplit.Handler = (*payHandler)(nil)

func (h *payHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	_, conf, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res := paysplit.CheckResult{
		GasAllocated: paySplitterCost + int64(len(s.Targets))*distributeTargetCost,
		RequiredFee:  conf.PayFee,
	}
	return &res, nil
}

func (h *payHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, conf, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := chargeFee(db, h.ctrl, conf, msg.Payer, msg.Fee); err != nil {
		return nil, err
	}

	if err := h.ctrl.MoveCoins(db, msg.Payer, SplitterAccount(msg.SplitterID), msg.Payment); err != nil {
		return nil, errors.Wrap(err, "cannot collect payment")
	}
	total, err := s.Balance.Add(msg.Payment)
	if err != nil {
		return nil, errors.Wrap(err, "balance")
	}
	s.Balance = total

	// Crossing the threshold triggers the payout right away. When the
	// balance cannot cover the payout fee yet, the payout waits for
	// further payments instead of failing the pay.
	if s.Balance.IsGTE(s.PayoutThreshold) && s.Balance.IsGTE(payoutFee(conf, s.Balance.Ticker)) {
		if err := runPayout(db, h.ctrl, h.market, conf, msg.SplitterID, s); err != nil {
			return nil, err
		}
	}

	if _, err := h.bucket.Put(db, msg.SplitterID, s); err != nil {
		return nil, errors.Wrap(err, "cannot store splitter")
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *payHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*PayMsg, Configuration, *Splitter, error) {
	var msg PayMsg
	var conf Configuration
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, conf, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, conf, nil, err
	}
	if err := coversFee(msg.Fee, conf.PayFee); err != nil {
		return nil, conf, nil, err
	}

	var s Splitter
	if err := h.bucket.One(db, msg.SplitterID, &s); err != nil {
		return nil, conf, nil, errors.Wrap(err, "cannot load splitter")
	}
	if msg.Payment.Ticker != s.Balance.Ticker {
		return nil, conf, nil, errors.Wrapf(ErrAssetMismatch, "splitter accepts %s", s.Balance.Ticker)
	}
	if !msg.Payment.IsGTE(s.MinPayment) || !s.MaxPayment.IsGTE(msg.Payment) {
		return nil, conf, nil, errors.Wrapf(ErrPaymentOutOfBounds, "accepted range [%s, %s]", s.MinPayment, s.MaxPayment)
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, conf, nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	return &msg, conf, &s, nil
}

// --- payout ---

// payoutHandler settles the payout fee from the splitter balance, not
// from the submitter. The declared message fee is therefore not
// required to cover the configured payout fee.
type payoutHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   CashController
	market Marketplace
}

var _ paysplit.Handler = (*payoutHandler)(nil)

func (h *payoutHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	_, _, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res := paysplit.CheckResult{
		GasAllocated: payoutSplitterCost + int64(len(s.Targets))*distributeTargetCost,
	}
	return &res, nil
}

func (h *payoutHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, conf, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := runPayout(db, h.ctrl, h.market, conf, msg.SplitterID, s); err != nil {
		return nil, err
	}
	if _, err := h.bucket.Put(db, msg.SplitterID, s); err != nil {
		return nil, errors.Wrap(err, "cannot store splitter")
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *payoutHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*PayoutMsg, Configuration, *Splitter, error) {
	var msg PayoutMsg
	var conf Configuration
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, conf, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, conf, nil, err
	}

	var s Splitter
	if err := h.bucket.One(db, msg.SplitterID, &s); err != nil {
		return nil, conf, nil, errors.Wrap(err, "cannot load splitter")
	}
	if !msg.Owner.Equals(s.Owner) {
		return nil, conf, nil, errors.Wrap(errors.ErrUnauthorized, "owner mismatch")
	}
	if !h.auth.HasAddress(ctx, s.Owner) {
		return nil, conf, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	if fee := payoutFee(conf, s.Balance.Ticker); !s.Balance.IsGTE(fee) {
		return nil, conf, nil, errors.Wrapf(ErrInsufficientBalance, "balance %s, fee %s", s.Balance, fee)
	}
	return &msg, conf, &s, nil
}

// --- delete ---

type deleteHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   CashController
}

var _ paysplit.Handler = (*deleteHandler)(nil)

func (h *deleteHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	_, conf, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res := paysplit.CheckResult{
		GasAllocated: deleteSplitterCost,
		RequiredFee:  conf.DeleteFee,
	}
	return &res, nil
}

func (h *deleteHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, conf, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := chargeFee(db, h.ctrl, conf, s.Owner, msg.Fee); err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.SplitterID); err != nil {
		return nil, errors.Wrap(err, "cannot delete splitter")
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *deleteHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*DeleteMsg, Configuration, *Splitter, error) {
	var msg DeleteMsg
	var conf Configuration
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, conf, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, conf, nil, err
	}
	if err := coversFee(msg.Fee, conf.DeleteFee); err != nil {
		return nil, conf, nil, err
	}

	var s Splitter
	if err := h.bucket.One(db, msg.SplitterID, &s); err != nil {
		return nil, conf, nil, errors.Wrap(err, "cannot load splitter")
	}
	if !msg.Owner.Equals(s.Owner) {
		return nil, conf, nil, errors.Wrap(errors.ErrUnauthorized, "owner mismatch")
	}
	if !h.auth.HasAddress(ctx, s.Owner) {
		return nil, conf, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	// Deleting a funded splitter would destroy the accumulated balance.
	if !s.Balance.IsZero() {
		return nil, conf, nil, errors.Wrapf(errors.ErrState, "balance %s must be paid out first", s.Balance)
	}
	return &msg, conf, &s, nil
}
