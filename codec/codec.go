// Package codec provides deterministic binary serialization for all
// persisted and transmitted structures.
//
// Encoding is CBOR restricted to the core deterministic profile, so the
// same value always produces the same bytes regardless of platform or
// process. Persisted models are additionally wrapped in a CBOR tag that
// identifies the type and its schema version, which lets readers reject
// foreign or future data instead of misinterpreting it.
package codec

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/iov-one/paysplit/errors"
)

// Tag identifies the type and schema version of a tagged value. Bump the
// tag number when the encoded layout of a type changes.
type Tag = uint64

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal serializes v using the deterministic encoding profile.
func Marshal(v interface{}) ([]byte, error) {
	raw, err := encMode.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// Unmarshal deserializes data into v.
func Unmarshal(data []byte, v interface{}) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// MarshalTagged serializes v wrapped in the given identification tag.
func MarshalTagged(tag Tag, v interface{}) ([]byte, error) {
	content, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	return Marshal(cbor.RawTag{
		Number:  tag,
		Content: content,
	})
}

// UnmarshalTagged deserializes data into v, requiring the payload to
// carry the given identification tag. Data tagged with any other number
// is rejected with ErrType.
func UnmarshalTagged(tag Tag, data []byte, v interface{}) error {
	var raw cbor.RawTag
	if err := Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Number != tag {
		return errors.Wrapf(errors.ErrType, "tag %d, expected %d", raw.Number, tag)
	}
	return Unmarshal(raw.Content, v)
}
