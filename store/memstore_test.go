package store

import (
	"context"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreWordDocidsRoundTrip(t *testing.T) {
	m := NewMemStore()
	b := roaring.New()
	b.AddMany([]uint32{1, 2, 3})
	m.SetWordDocids("fox", b)

	txn, err := m.Read(context.Background())
	require.NoError(t, err)

	got, err := txn.WordDocids(context.Background(), "fox")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{1, 2, 3}, got.ToArray())

	missing, err := txn.WordDocids(context.Background(), "nope")
	require.NoError(t, err)
	assert.True(t, missing.IsEmpty())
}

func TestMemStorePrefixAbsentIsFalse(t *testing.T) {
	m := NewMemStore()
	txn, err := m.Read(context.Background())
	require.NoError(t, err)

	_, ok, err := txn.WordPrefixDocids(context.Background(), "qu")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemStoreClearWordPrefixDocids(t *testing.T) {
	m := NewMemStore()
	wtxn, err := m.Write(context.Background())
	require.NoError(t, err)

	b := roaring.New()
	b.AddMany([]uint32{1})
	require.NoError(t, wtxn.SetWordPrefixDocids(context.Background(), "qu", b))

	_, ok, err := wtxn.WordPrefixDocids(context.Background(), "qu")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, wtxn.ClearWordPrefixDocids(context.Background()))

	_, ok, err = wtxn.WordPrefixDocids(context.Background(), "qu")
	require.NoError(t, err)
	assert.False(t, ok)
}
