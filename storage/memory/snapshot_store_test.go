package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/solscope/storage"
	"github.com/status-im/solscope/storage/storetest"
)

func TestSnapshotStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.SnapshotStore {
		return NewSnapshotStore(0)
	})
}

func TestSnapshotStore_Capacity(t *testing.T) {
	store := NewSnapshotStore(2)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Insert(ctx, storetest.NewSnapshot(fmt.Sprintf("s%d", i), i, "a")))
	}

	_, err := store.GetByID(ctx, "s0")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSnapshotStore_ReturnsCopies(t *testing.T) {
	store := NewSnapshotStore(0)
	ctx := context.Background()
	snap := storetest.NewSnapshot("s", 0, "a")
	require.NoError(t, store.Insert(ctx, snap))

	snap.Results[0].Score = 100
	got, err := store.GetByID(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.Results[0].Score)

	*got.Results[0].Sentiment = 1
	again, err := store.GetByID(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 0.25, *again.Results[0].Sentiment)
}
