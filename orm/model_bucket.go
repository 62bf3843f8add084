// Package orm provides an easy to use database wrapper for storing
// validated models under a bucket namespace.
package orm

import (
	"reflect"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	paysplit.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operate on a single model
// type.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db paysplit.ReadOnlyKVStore, key []byte, dest Model) error

	// Put saves given model in the database. Before inserting into
	// database, model is validated using its Validate method.
	// If the key is nil or zero length then a sequence generator is used
	// to create a unique key value.
	// Using a key that already exists in the database causes the value to
	// be overwritten.
	Put(db paysplit.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db paysplit.KVStore, key []byte) error

	// Has returns nil if an entity with given primary key value exists.
	// It returns ErrNotFound if no entity can be found.
	Has(db paysplit.KVStore, key []byte) error
}

// NewModelBucket returns a ModelBucket instance. This implementation
// relies on a bucket instance. Final implementation should operate
// directly on the KVStore instead.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	tp := reflect.TypeOf(m)
	if tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}

	b := &modelBucket{
		name:  name,
		model: tp,
	}

	for _, fn := range opts {
		fn(b)
	}
	return b
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(b *modelBucket)

// WithIDSequence configures the bucket to use given sequence instance for
// generating ID.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(b *modelBucket) {
		b.idSeq = &s
	}
}

type modelBucket struct {
	name  string
	idSeq *Sequence

	// model is referencing the structure type. Event if the structure
	// pointer is implementing Model interface, this variable references
	// the structure directly and not the structure's pointer type.
	model reflect.Type
}

// dbKey returns the raw database key for given primary key value.
func (b *modelBucket) dbKey(key []byte) []byte {
	return append([]byte(b.name+":"), key...)
}

func (b *modelBucket) One(db paysplit.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	raw, err := db.Get(b.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from store")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in bucket %s", key, b.name)
	}

	if tp := reflect.TypeOf(dest); tp.Kind() != reflect.Ptr || tp.Elem() != b.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, b.model)
	}

	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "cannot deserialize %s: %v", key, err)
	}
	return nil
}

func (b *modelBucket) Put(db paysplit.KVStore, key []byte, m Model) ([]byte, error) {
	mTp := reflect.TypeOf(m)
	if mTp.Kind() != reflect.Ptr {
		return nil, errors.Wrap(errors.ErrType, "model destination must be a pointer")
	}
	if b.model != mTp.Elem() {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T type in this bucket", m)
	}

	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		if b.idSeq == nil {
			return nil, errors.Wrap(errors.ErrInput, "no key provided and no sequence configured")
		}
		var err error
		key, err = b.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize")
	}
	if err := db.Set(b.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store")
	}
	return key, nil
}

func (b *modelBucket) Delete(db paysplit.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(b.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete")
	}
	return nil
}

func (b *modelBucket) Has(db paysplit.KVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	ok, err := db.Has(b.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot check")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in bucket %s", key, b.name)
	}
	return nil
}

var _ ModelBucket = (*modelBucket)(nil)
