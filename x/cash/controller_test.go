package cash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/paysplittest"
	"github.com/iov-one/paysplit/store"
)

func TestControllerMoveCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewWalletBucket())

	alice := paysplittest.NewCondition().Address()
	bob := paysplittest.NewCondition().Address()

	require.NoError(t, ctrl.CoinMint(db, alice, coin.NewCoin(10, 0, "IOV")))

	require.NoError(t, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(3, 0, "IOV")))

	got, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.True(t, got.Equals(coin.Coins{coin.NewCoinp(7, 0, "IOV")}))

	got, err = ctrl.Balance(db, bob)
	require.NoError(t, err)
	assert.True(t, got.Equals(coin.Coins{coin.NewCoinp(3, 0, "IOV")}))
}

func TestControllerInsufficientFunds(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewWalletBucket())

	alice := paysplittest.NewCondition().Address()
	bob := paysplittest.NewCondition().Address()

	require.NoError(t, ctrl.CoinMint(db, alice, coin.NewCoin(1, 0, "IOV")))

	if err := ctrl.MoveCoins(db, alice, bob, coin.NewCoin(2, 0, "IOV")); !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}
	// A different ticker is just as insufficient.
	if err := ctrl.MoveCoins(db, alice, bob, coin.NewCoin(1, 0, "BTC")); !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}
}

func TestControllerNoWallet(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewWalletBucket())

	nobody := paysplittest.NewCondition().Address()
	somebody := paysplittest.NewCondition().Address()

	if _, err := ctrl.Balance(db, nobody); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}
	if err := ctrl.MoveCoins(db, nobody, somebody, coin.NewCoin(1, 0, "IOV")); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}
}

func TestControllerRejectsNonPositive(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewWalletBucket())

	alice := paysplittest.NewCondition().Address()
	bob := paysplittest.NewCondition().Address()
	require.NoError(t, ctrl.CoinMint(db, alice, coin.NewCoin(1, 0, "IOV")))

	if err := ctrl.MoveCoins(db, alice, bob, coin.NewCoin(0, 0, "IOV")); !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}
	if err := ctrl.MoveCoins(db, alice, bob, coin.NewCoin(-1, 0, "IOV")); !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}
}
