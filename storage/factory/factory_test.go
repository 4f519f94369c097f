package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/storage"
	"github.com/status-im/solscope/storage/storetest"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	for _, cfg := range []config.StorageConfig{
		{Driver: config.StorageMemory, HistoryLimit: 5},
		{Driver: config.StorageSQLite, DSN: filepath.Join(t.TempDir(), "h.db")},
	} {
		t.Run(cfg.Driver, func(t *testing.T) {
			store, err := Open(ctx, cfg)
			require.NoError(t, err)
			defer func() { require.NoError(t, store.Close()) }()

			snap := storetest.NewSnapshot("snap-1", 0, "alpha")
			require.NoError(t, store.Insert(ctx, snap))
			latest, err := store.Latest(ctx)
			require.NoError(t, err)
			assert.Equal(t, "snap-1", latest.ID)

			_, err = store.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}

	_, err := Open(ctx, config.StorageConfig{Driver: "etcd"})
	assert.ErrorContains(t, err, "unknown storage driver")

	_, err = Open(ctx, config.StorageConfig{Driver: config.StorageClickhouse, DSN: "clickhouse://"})
	assert.Error(t, err)
}
