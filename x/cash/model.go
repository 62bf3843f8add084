// Package cash keeps track of coin balances. Each wallet is stored under
// the address of its owner and holds a set of coins.
package cash

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/codec"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// walletTag identifies serialized Wallet payloads.
const walletTag codec.Tag = 0x434101

// Wallet is the set of coins owned by one address.
type Wallet struct {
	_ struct{} `cbor:",toarray"`

	Metadata *paysplit.Metadata `json:"metadata"`
	Coins    coin.Coins         `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return codec.MarshalTagged(walletTag, w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return codec.UnmarshalTagged(walletTag, raw, w)
}

// Validate requires a valid metadata and a normalized coin set.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := w.Coins.Validate(); err != nil {
		return errors.Wrap(err, "coins")
	}
	return nil
}

// NewWalletBucket returns a bucket for keeping wallets, indexed by the
// owner address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash", &Wallet{})
}
