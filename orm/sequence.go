package orm

import (
	"encoding/binary"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// NewSequence returns a sequence counter. Each sequence maintains an
// independent counter value under its own key.
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{id: []byte(id)}
}

// Sequence maintains a counter that produces unique, monotonically
// increasing identifiers.
type Sequence struct {
	id []byte
}

// NextVal increments the sequence and returns its value as an 8 byte big
// endian block. The first returned value is 1.
func (s *Sequence) NextVal(db paysplit.KVStore) ([]byte, error) {
	v, err := s.increment(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(v), nil
}

// NextInt increments the sequence and returns its integer value.
func (s *Sequence) NextInt(db paysplit.KVStore) (int64, error) {
	return s.increment(db)
}

// Latest returns the most recently returned value of the sequence. A
// sequence that was never incremented returns zero.
func (s *Sequence) Latest(db paysplit.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "cannot get sequence")
	}
	if raw == nil {
		return 0, nil
	}
	return DecodeSequence(raw)
}

func (s *Sequence) increment(db paysplit.KVStore) (int64, error) {
	v, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	v++
	if err := db.Set(s.id, EncodeSequence(v)); err != nil {
		return 0, errors.Wrap(err, "cannot store sequence")
	}
	return v, nil
}

// EncodeSequence returns an 8 byte big endian representation of given
// counter value. This is the canonical identifier format.
func EncodeSequence(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

// DecodeSequence interprets given 8 byte big endian block as a counter
// value.
func DecodeSequence(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "invalid sequence length %d", len(b))
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}
