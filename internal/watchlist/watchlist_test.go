package watchlist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "watchlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_AddAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "alice"))
	require.NoError(t, store.Add(ctx, "bob"))

	users, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)
}

func TestStore_AddIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "alice"))
	require.NoError(t, store.Add(ctx, "alice"))

	users, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestStore_Remove(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "alice"))

	removed, err := store.Remove(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, removed, "removing an absent user reports false")

	users, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
