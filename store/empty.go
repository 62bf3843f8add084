package store

// EmptyKVStore never holds any data and silently swallows all writes. It
// serves as the bottom layer under in memory cache wraps.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil.
func (e EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

// Has always returns false.
func (e EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

// Set is a no-op.
func (e EmptyKVStore) Set(key, value []byte) error { return nil }

// Delete is a no-op.
func (e EmptyKVStore) Delete(key []byte) error { return nil }

// NewBatch returns a batch writing into this store.
func (e EmptyKVStore) NewBatch() Batch { return &NonAtomicBatch{out: e} }
