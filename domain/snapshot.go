package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSnapshot is returned by Snapshot.Validate.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the outcome of one refresh: the ranked coins of a category at a point in time.
type Snapshot struct {
	ID               string       `json:"id"`
	Category         string       `json:"category"`
	Chain            string       `json:"chain"`
	ScoreThreshold   float64      `json:"score_threshold"`
	SentimentEnabled bool         `json:"sentiment_enabled"`
	Considered       int          `json:"considered"`
	GeneratedAt      time.Time    `json:"generated_at"`
	Results          []RankedCoin `json:"results"`
}

// HotPicks returns the results scoring strictly above the threshold, in rank order.
func (s *Snapshot) HotPicks() []RankedCoin {
	if s == nil {
		return nil
	}
	picks := make([]RankedCoin, 0, len(s.Results))
	for _, c := range s.Results {
		if c.Score > s.ScoreThreshold {
			picks = append(picks, c)
		}
	}
	return picks
}

// Empty reports whether the snapshot has no results.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Results) == 0
}

// Validate checks the structural invariants every stored snapshot must satisfy.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil", ErrInvalidSnapshot)
	}
	if s.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidSnapshot)
	}
	if s.Category == "" {
		return fmt.Errorf("%w: empty category", ErrInvalidSnapshot)
	}
	for i, c := range s.Results {
		if c.Rank != i+1 {
			return fmt.Errorf("%w: result %d has rank %d", ErrInvalidSnapshot, i, c.Rank)
		}
		if c.ID == "" {
			return fmt.Errorf("%w: result %d has empty coin id", ErrInvalidSnapshot, i)
		}
		if i > 0 && c.Score > s.Results[i-1].Score {
			return fmt.Errorf("%w: scores not sorted at rank %d", ErrInvalidSnapshot, c.Rank)
		}
	}
	return nil
}

// ScorePoints flattens the snapshot into per-coin history points.
func (s *Snapshot) ScorePoints() []ScorePoint {
	points := make([]ScorePoint, 0, len(s.Results))
	for _, c := range s.Results {
		points = append(points, ScorePoint{
			SnapshotID:  s.ID,
			CoinID:      c.ID,
			Rank:        c.Rank,
			Score:       c.Score,
			Price:       c.Price,
			GeneratedAt: s.GeneratedAt.UnixMilli(),
		})
	}
	return points
}
