package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/storage"
)

// SnapshotStore implements storage.SnapshotStore using SQLite.
type SnapshotStore struct {
	db *sql.DB
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store over an opened database.
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// OpenSnapshotStore opens the database at dsn and returns a store owning it.
func OpenSnapshotStore(ctx context.Context, dsn string) (*SnapshotStore, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewSnapshotStore(db), nil
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (
			id, category, chain, score_threshold, sentiment_enabled, considered, generated_at, results
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
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

	for _, p := range snap.ScorePoints() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot_coins (snapshot_id, coin_id, rank, score, price, generated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.SnapshotID, p.CoinID, p.Rank, p.Score, p.Price, p.GeneratedAt)
		if err != nil {
			return fmt.Errorf("insert snapshot coin %s: %w", p.CoinID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const snapshotColumns = `id, category, chain, score_threshold, sentiment_enabled, considered, generated_at, results`

// GetByID retrieves a snapshot by ID.
func (s *SnapshotStore) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE id = ?`, id)
	return scanSnapshot(row)
}

// Latest returns the newest snapshot.
func (s *SnapshotStore) Latest(ctx context.Context) (*domain.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots ORDER BY generated_at DESC, rowid DESC LIMIT 1`)
	return scanSnapshot(row)
}

// List returns snapshots newest first.
func (s *SnapshotStore) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+` FROM snapshots
		ORDER BY generated_at DESC, rowid DESC
		LIMIT ?
	`, limit)
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
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT snapshot_id, coin_id, rank, score, price, generated_at
		FROM snapshot_coins
		WHERE coin_id = ?
		ORDER BY generated_at DESC
		LIMIT ?
	`, coinID, limit)
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

// Close closes the database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*domain.Snapshot, error) {
	var (
		snap        domain.Snapshot
		generatedAt int64
		results     string
	)
	err := row.Scan(&snap.ID, &snap.Category, &snap.Chain, &snap.ScoreThreshold, &snap.SentimentEnabled,
		&snap.Considered, &generatedAt, &results)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}

	snap.GeneratedAt = time.UnixMilli(generatedAt).UTC()
	if snap.Results, err = storage.DecodeResults([]byte(results)); err != nil {
		return nil, err
	}
	return &snap, nil
}
