package paysplit

import (
	"reflect"

	"github.com/iov-one/paysplit/errors"
)

// Msg is a message for the ledger to take an action (make a state
// transition). It is just the request, and must be validated by the
// handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate returns an error if the message content is not valid on
	// its own. State dependent checks belong to the handler.
	Validate() error

	// Path returns the message path.
	//
	// This is used by the router to locate the proper handler. Msg
	// should be created alongside the handler that corresponds to it.
	Path() string
}

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as this almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represents the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the sender
// (cryptographic signatures) and to pay fees, all handled by middleware.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures it is valid
// and loads it into the destination. The destination must be a pointer of
// the same type as the transported message.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dv := reflect.ValueOf(destination)
	if dv.Kind() != reflect.Ptr {
		return errors.Wrapf(errors.ErrType, "%T is not a pointer", destination)
	}
	mv := reflect.ValueOf(msg)
	if mv.Type() != dv.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dv.Elem().Set(mv.Elem())
	return nil
}
