// Package factory opens the SnapshotStore selected by configuration.
package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/storage"
	"github.com/status-im/solscope/storage/clickhouse"
	"github.com/status-im/solscope/storage/memory"
	"github.com/status-im/solscope/storage/postgres"
	"github.com/status-im/solscope/storage/sqlite"
)

// Open returns the configured store, migrated and ready for use.
func Open(ctx context.Context, cfg config.StorageConfig) (storage.SnapshotStore, error) {
	var (
		store storage.SnapshotStore
		err   error
	)

	switch cfg.Driver {
	case config.StorageMemory, "":
		store = memory.NewSnapshotStore(cfg.HistoryLimit)
	case config.StorageSQLite:
		store, err = sqlite.OpenSnapshotStore(ctx, cfg.DSN)
	case config.StoragePostgres:
		store, err = postgres.OpenSnapshotStore(ctx, cfg.DSN)
	case config.StorageClickhouse:
		store, err = clickhouse.OpenSnapshotStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}

	driver := cfg.Driver
	if driver == "" {
		driver = config.StorageMemory
	}
	zap.L().Info("snapshot store opened", zap.String("driver", driver))
	return storage.Instrumented(store, driver), nil
}
