// Package storage defines the snapshot history store and its shared helpers.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/status-im/solscope/domain"
)

// SnapshotStore keeps the history of refresh snapshots.
type SnapshotStore interface {
	// Insert stores a new snapshot. Returns ErrDuplicateKey if the ID exists
	// and ErrInvalidInput if the snapshot fails validation.
	Insert(ctx context.Context, s *domain.Snapshot) error

	// GetByID returns a snapshot. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)

	// Latest returns the newest snapshot. Returns ErrNotFound if the store is empty.
	Latest(ctx context.Context) (*domain.Snapshot, error)

	// List returns up to limit snapshots, newest first. A limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]*domain.Snapshot, error)

	// CoinScores returns up to limit appearances of a coin, newest first.
	CoinScores(ctx context.Context, coinID string, limit int) ([]domain.ScorePoint, error)

	Close() error
}

// ValidateSnapshot wraps domain validation errors in ErrInvalidInput.
func ValidateSnapshot(s *domain.Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// EncodeResults serializes ranked results for a single text/JSON column.
func EncodeResults(results []domain.RankedCoin) (string, error) {
	if results == nil {
		results = []domain.RankedCoin{}
	}
	b, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}
	return string(b), nil
}

// DecodeResults is the inverse of EncodeResults.
func DecodeResults(data []byte) ([]domain.RankedCoin, error) {
	var results []domain.RankedCoin
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return results, nil
}
