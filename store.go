package paysplit

import (
	"github.com/iov-one/paysplit/store"
)

// Store interfaces are defined in the store package and aliased here so
// that extensions only need to import the root package.
type (
	// ReadOnlyKVStore is a simple interface to read data.
	ReadOnlyKVStore = store.ReadOnlyKVStore

	// KVStore is a simple interface to get/set data.
	//
	// For simplicity, we require all backing stores to implement this
	// interface. They *may* implement other methods as well, but at
	// least these are required.
	KVStore = store.KVStore

	// CacheableKVStore is a KVStore that supports CacheWrap.
	//
	// The cache wrap groups temporary writes which may be committed or
	// discarded together, like Postgresql SAVEPOINT / ROLLBACK TO
	// SAVEPOINT. This gives an operation all-or-nothing application: a
	// rejected transaction leaves no observable mutation.
	CacheableKVStore = store.CacheableKVStore

	// KVCacheWrap allows us to maintain a scratch-pad of uncommitted
	// data that we can view with all queries.
	//
	// At the end, call Write to use the cached data, or Discard to drop
	// it.
	KVCacheWrap = store.KVCacheWrap
)
