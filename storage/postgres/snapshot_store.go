package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/storage"
)

// SnapshotStore implements storage.SnapshotStore using PostgreSQL.
type SnapshotStore struct {
	pool *Pool
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(pool *Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// OpenSnapshotStore connects, migrates and returns a store owning the pool.
func OpenSnapshotStore(ctx context.Context, dsn string) (*SnapshotStore, error) {
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewSnapshotStore(pool), nil
}

// Insert adds a snapshot and its per-coin rows in one transaction.
func (s *SnapshotStore) Insert(ctx context.Context, snap *domain.Snapshot) error {
	if err := storage.ValidateSnapshot(snap); err != nil {
		return err
	}
	results, err := storage.EncodeResults(snap.Results)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO snapshots (
			id, category, chain, score_threshold, sentiment_enabled, considered, generated_at, results
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		snap.ID, snap.Category, snap.Chain, snap.ScoreThreshold, snap.SentimentEnabled,
		snap.Considered, snap.GeneratedAt.UnixMilli(), results,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert snapshot: %w", err)
	}

	batch := &pgx.Batch{}
	for _, p := range snap.ScorePoints() {
		batch.Queue(`
			INSERT INTO snapshot_coins (snapshot_id, coin_id, rank, score, price, generated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.SnapshotID, p.CoinID, p.Rank, p.Score, p.Price, p.GeneratedAt)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert snapshot coins: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const snapshotColumns = `id, category, chain, score_threshold, sentiment_enabled, considered, generated_at, results`

// GetByID retrieves a snapshot by ID.
func (s *SnapshotStore) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE id = $1`, id)
	return scanSnapshot(row)
}

// Latest returns the newest snapshot.
func (s *SnapshotStore) Latest(ctx context.Context) (*domain.Snapshot, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+snapshotColumns+` FROM snapshots ORDER BY generated_at DESC, seq DESC LIMIT 1`)
	return scanSnapshot(row)
}

// List returns snapshots newest first.
func (s *SnapshotStore) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+snapshotColumns+` FROM snapshots
		ORDER BY generated_at DESC, seq DESC
		LIMIT $1
	`, limitArg)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var result []*domain.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, snap)
	}
	return result, rows.Err()
}

// CoinScores returns the appearances of coinID, newest first.
func (s *SnapshotStore) CoinScores(ctx context.Context, coinID string, limit int) ([]domain.ScorePoint, error) {
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT snapshot_id, coin_id, rank, score, price, generated_at
		FROM snapshot_coins
		WHERE coin_id = $1
		ORDER BY generated_at DESC
		LIMIT $2
	`, coinID, limitArg)
	if err != nil {
		return nil, fmt.Errorf("query coin scores: %w", err)
	}
	defer rows.Close()

	var points []domain.ScorePoint
	for rows.Next() {
		var p domain.ScorePoint
		if err := rows.Scan(&p.SnapshotID, &p.CoinID, &p.Rank, &p.Score, &p.Price, &p.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan coin score: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Close closes the pool.
func (s *SnapshotStore) Close() error {
	s.pool.Close()
	return nil
}

func scanSnapshot(row pgx.Row) (*domain.Snapshot, error) {
	var (
		snap        domain.Snapshot
		generatedAt int64
		results     []byte
	)
	err := row.Scan(&snap.ID, &snap.Category, &snap.Chain, &snap.ScoreThreshold, &snap.SentimentEnabled,
		&snap.Considered, &generatedAt, &results)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}

	snap.GeneratedAt = time.UnixMilli(generatedAt).UTC()
	if snap.Results, err = storage.DecodeResults(results); err != nil {
		return nil, err
	}
	return &snap, nil
}
