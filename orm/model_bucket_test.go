package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/paysplit/codec"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store"
)

type cnt struct {
	_ struct{} `cbor:",toarray"`

	Val int64
}

func (c *cnt) Marshal() ([]byte, error) { return codec.Marshal(c) }
func (c *cnt) Unmarshal(b []byte) error { return codec.Unmarshal(b, c) }

func (c *cnt) Validate() error {
	if c.Val < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &cnt{})

	key, err := b.Put(db, []byte("c1"), &cnt{Val: 1})
	require.NoError(t, err)
	assert.Equal(t, []byte("c1"), key)

	var loaded cnt
	require.NoError(t, b.One(db, []byte("c1"), &loaded))
	assert.Equal(t, int64(1), loaded.Val)
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &cnt{})

	if _, err := b.Put(db, []byte("c1"), &cnt{Val: -1}); !errors.ErrState.Is(err) {
		t.Fatalf("want state error, got %+v", err)
	}
}

func TestModelBucketPutSequence(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &cnt{}, WithIDSequence(NewSequence("cnts", "id")))

	key, err := b.Put(db, nil, &cnt{Val: 1})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, key)

	key, err = b.Put(db, nil, &cnt{Val: 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2}, key)
}

func TestModelBucketOneNotFound(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &cnt{})

	var loaded cnt
	if err := b.One(db, []byte("nope"), &loaded); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestModelBucketWrongModelType(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &cnt{})

	if _, err := b.Put(db, []byte("k"), &badModel{}); !errors.ErrType.Is(err) {
		t.Fatalf("want type error, got %+v", err)
	}
}

type badModel struct{}

func (badModel) Marshal() ([]byte, error) { return nil, nil }
func (badModel) Unmarshal([]byte) error   { return nil }
func (badModel) Validate() error          { return nil }

func TestModelBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &cnt{})

	if err := b.Delete(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}

	_, err := b.Put(db, []byte("c1"), &cnt{Val: 1})
	require.NoError(t, err)
	require.NoError(t, b.Delete(db, []byte("c1")))
	if err := b.Has(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestSequenceLatest(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("bucket", "id")

	latest, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), latest)

	for i := int64(1); i < 5; i++ {
		n, err := s.NextInt(db)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	latest, err = s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(4), latest)
}
