package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/solscope/storage"
	"github.com/status-im/solscope/storage/storetest"
)

func newTestStore(t *testing.T) storage.SnapshotStore {
	t.Helper()
	store, err := OpenSnapshotStore(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSnapshotStore_Contract(t *testing.T) {
	storetest.Run(t, newTestStore)
}

func TestSnapshotStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := OpenSnapshotStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, storetest.NewSnapshot("persisted", 0, "a")))
	require.NoError(t, store.Close())

	reopened, err := OpenSnapshotStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.ID)
}

func TestSnapshotStore_InMemory(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSnapshotStore(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Insert(ctx, storetest.NewSnapshot("m", 0, "a", "b")))
	points, err := store.CoinScores(ctx, "b", 5)
	require.NoError(t, err)
	assert.Len(t, points, 1)
}
