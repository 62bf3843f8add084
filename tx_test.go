package paysplit_test

import (
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/paysplittest"
)

func TestLoadMsg(t *testing.T) {
	msg := &paysplittest.Msg{RoutePath: "test/good", Serialized: []byte("payload")}
	tx := &paysplittest.Tx{Msg: msg}

	var loaded paysplittest.Msg
	if err := paysplit.LoadMsg(tx, &loaded); err != nil {
		t.Fatalf("load: %+v", err)
	}
	if loaded.RoutePath != "test/good" || string(loaded.Serialized) != "payload" {
		t.Fatalf("lossy load: %+v", loaded)
	}
}

func TestLoadMsgValidates(t *testing.T) {
	broken := errors.ErrMsg.New("broken")
	tx := &paysplittest.Tx{Msg: &paysplittest.Msg{Err: broken}}

	var loaded paysplittest.Msg
	if err := paysplit.LoadMsg(tx, &loaded); !errors.ErrMsg.Is(err) {
		t.Fatalf("want message error, got %+v", err)
	}
}

func TestLoadMsgWrongDestination(t *testing.T) {
	tx := &paysplittest.Tx{Msg: &paysplittest.Msg{RoutePath: "test/good"}}

	var wrong otherMsg
	if err := paysplit.LoadMsg(tx, &wrong); !errors.ErrType.Is(err) {
		t.Fatalf("want type error, got %+v", err)
	}
}

type otherMsg struct {
	paysplittest.Msg
}

func TestGetPath(t *testing.T) {
	tx := &paysplittest.Tx{Msg: &paysplittest.Msg{RoutePath: "test/good"}}
	if got := paysplit.GetPath(tx); got != "test/good" {
		t.Fatalf("want test/good, got %q", got)
	}

	failing := &paysplittest.Tx{Err: errors.ErrMsg.New("no message")}
	if got := paysplit.GetPath(failing); got != "(missing)" {
		t.Fatalf("want (missing), got %q", got)
	}
}
