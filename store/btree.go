// Package store provides an in memory implementation of the application
// key value store, backed by a btree with copy-on-write cache wraps.
package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	// degree of btree nodes
	degree = 16
)

// BTreeCacheable adds a simple btree-based CacheWrap strategy to a
// KVStore.
type BTreeCacheable struct {
	KVStore
}

// CacheWrap returns a BTreeCacheWrap that catches all writes and allows
// them to be flushed to the parent store in one Write call or thrown
// away with Discard.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch())
}

// MemStore returns an empty, fully cache-backed store kept only in
// memory. It is intended for tests.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch())
}

// BTreeCacheWrap places a btree on top of a KVStore. Reads consult the
// local tree first and fall back to the parent store, writes only touch
// the tree until Write flushes them as a batch.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	back  ReadOnlyKVStore
	batch Batch
}

// NewBTreeCacheWrap initializes a BTreeCacheWrap given a backing store
// and a batch to accumulate writes into.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch) BTreeCacheWrap {
	return BTreeCacheWrap{
		bt:    btree.New(degree),
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another cache on top of this one. Don't change the
// underlying store while the wrap is in use.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch())
}

// NewBatch returns a batch that writes into this cache wrap.
func (b BTreeCacheWrap) NewBatch() Batch {
	return &NonAtomicBatch{out: b}
}

// Write flushes the cached writes to the backing store via the batch.
func (b BTreeCacheWrap) Write() error {
	return b.batch.Write()
}

// Discard drops all cached writes. The wrap can be reused afterwards.
func (b BTreeCacheWrap) Discard() {
	for b.bt.Len() > 0 {
		b.bt.DeleteMin()
	}
	b.batch = b.batch.Discard()
}

// Set writes the key in the cache and records it in the batch.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	b.batch.Set(key, value)
	return nil
}

// Delete marks the key as removed in the cache and records the deletion
// in the batch.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	b.batch.Delete(key)
	return nil
}

// Get reads a key from the cache, falling back to the backing store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value, nil
		case deletedItem:
			return nil, nil
		}
	}
	return b.back.Get(key)
}

// Has reports key presence, consulting the cache first.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true, nil
		case deletedItem:
			return false, nil
		}
	}
	return b.back.Has(key)
}

/////////////////////////////////////////////////////////
// btree items

// bkey implements btree.Item and is used for lookups.
type bkey struct {
	key []byte
}

func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

func (k bkey) Key() []byte {
	return k.key
}

// keyer is implemented by all btree items in the cache.
type keyer interface {
	Key() []byte
}

// setItem is a key-value pair that was written in the cache.
type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}

// deletedItem marks a key as removed in the cache.
type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}
