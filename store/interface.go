package store

// ReadOnlyKVStore is a simple interface to read data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Errors on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Errors on nil key.
	Has(key []byte) (bool, error)
}

// SetDeleter is a minimal interface for writing data.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch can write multiple ops atomically to an underlying KVStore.
type Batch interface {
	SetDeleter
	Write() error
	// Discard drops any pending writes and returns a reusable instance.
	Discard() Batch
}

// CacheableKVStore is a KVStore that supports CacheWrap.
//
// The cache wrap groups temporary writes that are later committed or
// discarded together, giving an operation all-or-nothing application.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch-pad of uncommitted data on top of a store.
//
// At the end, call Write to flush the cached data, or Discard to drop it.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}
