package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/status-im/solscope/storage"
	"github.com/status-im/solscope/storage/storetest"
)

func TestSnapshotStore_Contract(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	storetest.Run(t, func(t *testing.T) storage.SnapshotStore {
		_, err := pool.Exec(context.Background(), `TRUNCATE snapshot_coins, snapshots`)
		require.NoError(t, err)
		return &SnapshotStore{pool: pool}
	})
}

func TestRunMigrations_Idempotent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, RunMigrations(context.Background(), pool))
}
