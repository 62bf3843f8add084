package paysplittest

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/codec"
)

// Tx is a mock transaction wrapping a single message.
type Tx struct {
	// Msg is the message this transaction carries.
	Msg paysplit.Msg

	// Err if set is returned by any method call.
	Err error
}

var _ paysplit.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (paysplit.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal(b []byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	return tx.Msg.Unmarshal(b)
}

// Msg is a mock message with a configurable path and payload.
type Msg struct {
	// RoutePath is returned by Path.
	RoutePath string

	// Serialized is the raw payload carried by this message.
	Serialized []byte

	// Err if set is returned by Marshal, Unmarshal and Validate.
	Err error
}

var _ paysplit.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Marshal() ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return codec.Marshal(m.Serialized)
}

func (m *Msg) Unmarshal(b []byte) error {
	if m.Err != nil {
		return m.Err
	}
	return codec.Unmarshal(b, &m.Serialized)
}

func (m *Msg) Validate() error {
	return m.Err
}
