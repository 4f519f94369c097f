package storage

import (
	"context"
	"errors"

	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/metrics"
)

// Instrumented records every call of a store in the store operation metrics.
func Instrumented(next SnapshotStore, driver string) SnapshotStore {
	return &instrumented{next: next, driver: driver}
}

type instrumented struct {
	next   SnapshotStore
	driver string
}

func (s *instrumented) Insert(ctx context.Context, snap *domain.Snapshot) error {
	err := s.next.Insert(ctx, snap)
	metrics.RecordStoreOperation(s.driver, "insert", err)
	return err
}

func (s *instrumented) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	snap, err := s.next.GetByID(ctx, id)
	metrics.RecordStoreOperation(s.driver, "get", ignoreNotFound(err))
	return snap, err
}

func (s *instrumented) Latest(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := s.next.Latest(ctx)
	metrics.RecordStoreOperation(s.driver, "latest", ignoreNotFound(err))
	return snap, err
}

func (s *instrumented) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	snaps, err := s.next.List(ctx, limit)
	metrics.RecordStoreOperation(s.driver, "list", err)
	return snaps, err
}

func (s *instrumented) CoinScores(ctx context.Context, coinID string, limit int) ([]domain.ScorePoint, error) {
	points, err := s.next.CoinScores(ctx, coinID, limit)
	metrics.RecordStoreOperation(s.driver, "coin_scores", err)
	return points, err
}

func (s *instrumented) Close() error {
	return s.next.Close()
}

// a missing snapshot is an answer, not a failure
func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
