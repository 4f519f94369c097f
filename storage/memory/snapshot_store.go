// Package memory provides an in-process SnapshotStore.
package memory

import (
	"context"
	"sync"

	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/storage"
)

// SnapshotStore is an in-memory implementation of storage.SnapshotStore.
// When capacity is positive the oldest snapshots are evicted beyond it.
type SnapshotStore struct {
	mu       sync.RWMutex
	capacity int
	order    []string // insertion order, oldest first
	data     map[string]*domain.Snapshot
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store. A capacity <= 0 keeps everything.
func NewSnapshotStore(capacity int) *SnapshotStore {
	return &SnapshotStore{
		capacity: capacity,
		data:     make(map[string]*domain.Snapshot),
	}
}

// Insert adds a snapshot. Returns ErrDuplicateKey if the ID exists.
func (s *SnapshotStore) Insert(_ context.Context, snap *domain.Snapshot) error {
	if err := storage.ValidateSnapshot(snap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[snap.ID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[snap.ID] = copySnapshot(snap)
	s.order = append(s.order, snap.ID)

	if s.capacity > 0 {
		for len(s.order) > s.capacity {
			delete(s.data, s.order[0])
			s.order = s.order[1:]
		}
	}
	return nil
}

// GetByID retrieves a snapshot by ID.
func (s *SnapshotStore) GetByID(_ context.Context, id string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copySnapshot(snap), nil
}

// Latest returns the most recently inserted snapshot.
func (s *SnapshotStore) Latest(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return nil, storage.ErrNotFound
	}
	return copySnapshot(s.data[s.order[len(s.order)-1]]), nil
}

// List returns snapshots newest first.
func (s *SnapshotStore) List(_ context.Context, limit int) ([]*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]*domain.Snapshot, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, copySnapshot(s.data[s.order[i]]))
	}
	return result, nil
}

// CoinScores returns the appearances of coinID, newest first.
func (s *SnapshotStore) CoinScores(_ context.Context, coinID string, limit int) ([]domain.ScorePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var points []domain.ScorePoint
	for i := len(s.order) - 1; i >= 0; i-- {
		for _, p := range s.data[s.order[i]].ScorePoints() {
			if p.CoinID != coinID {
				continue
			}
			points = append(points, p)
			if limit > 0 && len(points) == limit {
				return points, nil
			}
		}
	}
	return points, nil
}

// Close is a no-op.
func (s *SnapshotStore) Close() error { return nil }

func copySnapshot(src *domain.Snapshot) *domain.Snapshot {
	dst := *src
	dst.Results = make([]domain.RankedCoin, len(src.Results))
	for i, c := range src.Results {
		if c.Sentiment != nil {
			v := *c.Sentiment
			c.Sentiment = &v
		}
		dst.Results[i] = c
	}
	return &dst
}
