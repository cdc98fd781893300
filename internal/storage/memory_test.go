package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
)

// contractTest runs the behaviour every BlobStore must share.
func contractTest(t *testing.T, store domain.BlobStore) {
	t.Helper()
	ctx := context.Background()

	// Missing key.
	_, err := store.Get(ctx, "recipes")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Set then get.
	require.NoError(t, store.Set(ctx, "recipes", []byte(`[]`)))
	got, err := store.Get(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	// Overwrite.
	require.NoError(t, store.Set(ctx, "recipes", []byte(`[{"id":"1"}]`)))
	got, err = store.Get(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), got)

	// Keys are independent.
	_, err = store.Get(ctx, "other")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStoreContract(t *testing.T) {
	contractTest(t, NewMemoryStore(logger.New(logger.LevelOff, nil)))
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	blob := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", blob))
	blob[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
