package std

import (
	"context"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/gconf"
	"github.com/iov-one/paysplit/paysplittest"
	"github.com/iov-one/paysplit/store"
	"github.com/iov-one/paysplit/x/cash"
	"github.com/iov-one/paysplit/x/splitter"
)

// marketStub accepts buyback funding by moving it to a book address.
type marketStub struct {
	ctrl *cash.CashController
	book paysplit.Address
}

func (m marketStub) PlaceOrIncreaseLimitOrder(db paysplit.KVStore, funder paysplit.Address, assetToBuy string, limitPrice splitter.Price, funding coin.Coin) error {
	return m.ctrl.MoveCoins(db, funder, m.book, funding)
}

func TestStackRejectsUnknownPath(t *testing.T) {
	auth := &paysplittest.CtxAuth{Key: "auth"}
	ctrl := cash.NewController(cash.NewWalletBucket())
	stack := Stack(auth, ctrl, marketStub{ctrl: ctrl, book: paysplittest.NewCondition().Address()})

	db := store.MemStore()
	tx := &paysplittest.Tx{Msg: &paysplittest.Msg{RoutePath: "test/unknown"}}
	if _, err := stack.Deliver(context.Background(), db, tx); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestStackRollsBackRejectedOperation(t *testing.T) {
	auth := &paysplittest.CtxAuth{Key: "auth"}
	ctrl := cash.NewController(cash.NewWalletBucket())
	stack := Stack(auth, ctrl, marketStub{ctrl: ctrl, book: paysplittest.NewCondition().Address()})

	db := store.MemStore()
	conf := &splitter.Configuration{
		Metadata:         &paysplit.Metadata{Schema: 1},
		CollectorAddress: paysplittest.NewCondition().Address(),
		CreateFee:        coin.NewCoin(2, 0, "IOV"),
		UpdateFee:        coin.NewCoin(2, 0, "IOV"),
		PricePerKbyte:    coin.NewCoin(0, 0, "IOV"),
		PayFee:           coin.NewCoin(1, 0, "IOV"),
		PayoutFee:        coin.NewCoin(2, 0, "IOV"),
		DeleteFee:        coin.NewCoin(1, 0, "IOV"),
	}
	if err := gconf.Save(db, "splitter", conf); err != nil {
		t.Fatalf("save configuration: %+v", err)
	}

	payer := paysplittest.NewCondition()
	if err := ctrl.CoinMint(db, payer.Address(), coin.NewCoin(3, 0, "IOV")); err != nil {
		t.Fatalf("fund payer: %+v", err)
	}
	ctx := auth.SetConditions(context.Background(), payer)

	create := &splitter.CreateMsg{
		Metadata:        &paysplit.Metadata{Schema: 1},
		Fee:             coin.NewCoin(2, 0, "IOV"),
		Payer:           payer.Address(),
		Owner:           paysplittest.NewCondition().Address(),
		Targets:         []*splitter.TargetWeight{{Weight: 1, Target: splitter.Target{Account: paysplittest.NewCondition().Address()}}},
		MinPayment:      coin.NewCoin(1, 0, "IOV"),
		MaxPayment:      coin.NewCoin(100, 0, "IOV"),
		PayoutThreshold: coin.NewCoin(90, 0, "IOV"),
	}
	res, err := stack.Deliver(ctx, db, &paysplittest.Tx{Msg: create})
	if err != nil {
		t.Fatalf("create: %+v", err)
	}

	// In bounds but unaffordable: the fee transfer succeeds, the payment
	// collection fails, the savepoint rolls both back.
	pay := &splitter.PayMsg{
		Metadata:   &paysplit.Metadata{Schema: 1},
		Fee:        coin.NewCoin(1, 0, "IOV"),
		SplitterID: res.Data,
		Payer:      payer.Address(),
		Payment:    coin.NewCoin(5, 0, "IOV"),
	}
	if _, err := stack.Deliver(ctx, db, &paysplittest.Tx{Msg: pay}); err == nil {
		t.Fatal("unaffordable payment must be rejected")
	}

	coins, err := ctrl.Balance(db, payer.Address())
	if err != nil {
		t.Fatalf("payer balance: %+v", err)
	}
	if got := coins.Amount("IOV"); !got.Equals(coin.NewCoin(1, 0, "IOV")) {
		t.Fatalf("rejected operation must leave no trace, payer has %v", got)
	}
}
