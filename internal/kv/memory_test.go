package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte(`["a","b"]`)))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a","b"]`), value)

	// Overwrite replaces the whole value.
	require.NoError(t, store.Set(ctx, "k", []byte(`[]`)))
	value, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)
}

func TestMemory_Delete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "k"))
}

func TestMemory_CopiesValues(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	buf := []byte("original")
	require.NoError(t, store.Set(ctx, "k", buf))
	buf[0] = 'X'

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), value)
}
