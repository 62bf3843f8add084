package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	v, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	ok, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, db.Delete([]byte("a")))
	ok, err = db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheWrapWrite(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Delete([]byte("a")))

	// Parent must not see uncommitted writes.
	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	ok, err := db.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, ok)

	// Cache sees its own writes layered over the parent.
	v, err = cache.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = cache.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	require.NoError(t, cache.Write())

	v, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestCacheWrapDiscard(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("overwritten")))
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	cache.Discard()

	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	ok, err := db.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, ok)
}
