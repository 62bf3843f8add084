package cash

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// Controller is the functionality needed by other extensions to move
// funds between wallets. This is implemented by CashController and
// extracted as an interface so it can be mocked in tests.
type Controller interface {
	// Balance returns the coins held by given account. Missing wallet is
	// reported as ErrEmpty.
	Balance(db paysplit.KVStore, src paysplit.Address) (coin.Coins, error)

	// MoveCoins transfers the amount from source to destination account.
	MoveCoins(db paysplit.KVStore, src, dest paysplit.Address, amount coin.Coin) error

	// CoinMint issues new coins to the destination account. It is meant
	// for genesis setup and testing, not for transaction handlers.
	CoinMint(db paysplit.KVStore, dest paysplit.Address, amount coin.Coin) error
}

// CashController is the standard implementation that moves coins between
// wallet bucket entries.
type CashController struct {
	bucket orm.ModelBucket
}

var _ Controller = (*CashController)(nil)

// NewController returns a controller using given bucket to store wallet
// state.
func NewController(bucket orm.ModelBucket) *CashController {
	return &CashController{bucket: bucket}
}

// Balance returns the coins held in the wallet of given address.
func (c *CashController) Balance(db paysplit.KVStore, src paysplit.Address) (coin.Coins, error) {
	var w Wallet
	switch err := c.bucket.One(db, src, &w); {
	case err == nil:
		return w.Coins, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrEmpty, "no wallet for %s", src)
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

// MoveCoins transfers the given amount from src to dest wallet. The
// source must hold at least the given amount.
func (c *CashController) MoveCoins(db paysplit.KVStore, src, dest paysplit.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "must be positive, got %s", amount)
	}

	var sender Wallet
	if err := c.bucket.One(db, src, &sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrEmpty, "no wallet for %s", src)
		}
		return errors.Wrap(err, "cannot load sender")
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "wallet %s holds only %s %s",
			src, sender.Coins.Amount(amount.Ticker), amount.Ticker)
	}
	remaining, err := sender.Coins.Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "cannot withdraw")
	}
	sender.Coins = remaining

	if err := c.deposit(db, dest, amount, sender.Metadata.Schema); err != nil {
		return err
	}
	if _, err := c.bucket.Put(db, src, &sender); err != nil {
		return errors.Wrap(err, "cannot store sender")
	}
	return nil
}

// CoinMint issues new coins into the destination wallet.
func (c *CashController) CoinMint(db paysplit.KVStore, dest paysplit.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "must be positive, got %s", amount)
	}
	return c.deposit(db, dest, amount, 1)
}

func (c *CashController) deposit(db paysplit.KVStore, dest paysplit.Address, amount coin.Coin, schema uint32) error {
	var receiver Wallet
	switch err := c.bucket.One(db, dest, &receiver); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		receiver = Wallet{Metadata: &paysplit.Metadata{Schema: schema}}
	default:
		return errors.Wrap(err, "cannot load receiver")
	}

	total, err := receiver.Coins.Add(amount)
	if err != nil {
		return errors.Wrap(err, "cannot deposit")
	}
	receiver.Coins = total
	if _, err := c.bucket.Put(db, dest, &receiver); err != nil {
		return errors.Wrap(err, "cannot store receiver")
	}
	return nil
}
