package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/storage"
)

// SnapshotStore implements storage.SnapshotStore using ClickHouse.
type SnapshotStore struct {
	conn *Conn
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(conn *Conn) *SnapshotStore {
	return &SnapshotStore{conn: conn}
}

// OpenSnapshotStore connects, migrates and returns a store owning the connection.
func OpenSnapshotStore(ctx context.Context, dsn string) (*SnapshotStore, error) {
	conn, err := NewConn(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return NewSnapshotStore(conn), nil
}

// Insert adds a snapshot. Fails with ErrDuplicateKey if the id is already stored.
func (s *SnapshotStore) Insert(ctx context.Context, snap *domain.Snapshot) error {
	if err := storage.ValidateSnapshot(snap); err != nil {
		return err
	}

	exists, err := s.exists(ctx, snap.ID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	results, err := storage.EncodeResults(snap.Results)
	if err != nil {
		return err
	}

	var sentimentEnabled uint8
	if snap.SentimentEnabled {
		sentimentEnabled = 1
	}

	err = s.conn.Exec(ctx, `
		INSERT INTO snapshots (
			id, category, chain, score_threshold, sentiment_enabled, considered, generated_at, results
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		snap.ID, snap.Category, snap.Chain, snap.ScoreThreshold, sentimentEnabled,
		uint32(snap.Considered), snap.GeneratedAt.UnixMilli(), results,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	points := snap.ScorePoints()
	if len(points) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO snapshot_coins (
			snapshot_id, coin_id, rank, score, price, generated_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, p := range points {
		if err := batch.Append(p.SnapshotID, p.CoinID, uint16(p.Rank), p.Score, p.Price, p.GeneratedAt); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func (s *SnapshotStore) exists(ctx context.Context, id string) (bool, error) {
	var count uint64
	if err := s.conn.QueryRow(ctx, `SELECT count() FROM snapshots WHERE id = ?`, id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

const snapshotColumns = `id, category, chain, score_threshold, sentiment_enabled, considered, generated_at, results`

// GetByID retrieves a snapshot by ID.
func (s *SnapshotStore) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	snaps, err := s.query(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE id = ? LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, storage.ErrNotFound
	}
	return snaps[0], nil
}

// Latest returns the newest snapshot.
func (s *SnapshotStore) Latest(ctx context.Context) (*domain.Snapshot, error) {
	snaps, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, storage.ErrNotFound
	}
	return snaps[0], nil
}

// List returns snapshots newest first.
func (s *SnapshotStore) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	q := `SELECT ` + snapshotColumns + ` FROM snapshots ORDER BY generated_at DESC, inserted_at DESC`
	if limit > 0 {
		return s.query(ctx, q+` LIMIT ?`, uint64(limit))
	}
	return s.query(ctx, q)
}

func (s *SnapshotStore) query(ctx context.Context, q string, args ...any) ([]*domain.Snapshot, error) {
	rows, err := s.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var result []*domain.Snapshot
	for rows.Next() {
		var (
			snap             domain.Snapshot
			sentimentEnabled uint8
			considered       uint32
			generatedAt      int64
			results          string
		)
		if err := rows.Scan(&snap.ID, &snap.Category, &snap.Chain, &snap.ScoreThreshold, &sentimentEnabled,
			&considered, &generatedAt, &results); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.SentimentEnabled = sentimentEnabled == 1
		snap.Considered = int(considered)
		snap.GeneratedAt = time.UnixMilli(generatedAt).UTC()
		if snap.Results, err = storage.DecodeResults([]byte(results)); err != nil {
			return nil, err
		}
		result = append(result, &snap)
	}
	return result, rows.Err()
}

// CoinScores returns the appearances of coinID, newest first.
func (s *SnapshotStore) CoinScores(ctx context.Context, coinID string, limit int) ([]domain.ScorePoint, error) {
	q := `
		SELECT snapshot_id, coin_id, rank, score, price, generated_at
		FROM snapshot_coins
		WHERE coin_id = ?
		ORDER BY generated_at DESC`
	args := []any{coinID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, uint64(limit))
	}

	rows, err := s.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query coin scores: %w", err)
	}
	defer rows.Close()

	var points []domain.ScorePoint
	for rows.Next() {
		var (
			p    domain.ScorePoint
			rank uint16
		)
		if err := rows.Scan(&p.SnapshotID, &p.CoinID, &rank, &p.Score, &p.Price, &p.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan coin score: %w", err)
		}
		p.Rank = int(rank)
		points = append(points, p)
	}
	return points, rows.Err()
}

// Close closes the connection.
func (s *SnapshotStore) Close() error {
	return s.conn.Close()
}
