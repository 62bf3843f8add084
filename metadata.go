package paysplit

import (
	"github.com/iov-one/paysplit/errors"
)

// Metadata is carried by every persistent entity and message. The schema
// version allows data representation to evolve without breaking already
// stored state.
type Metadata struct {
	_ struct{} `cbor:",toarray"`

	Schema uint32 `json:"schema"`
}

// Validate returns an error if the metadata is incomplete.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrEmpty, "metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrInput, "schema version required")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when
// implementing a deep copy of an entity that embeds the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
