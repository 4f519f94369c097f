package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		ID:             "snap-1",
		Category:       "artificial-intelligence",
		Chain:          "solana",
		ScoreThreshold: 5.0,
		GeneratedAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Results: []RankedCoin{
			{Rank: 1, ID: "alpha", Name: "Alpha", Score: 7.5, Price: 1.2},
			{Rank: 2, ID: "beta", Name: "Beta", Score: 5.0, Price: 0.3},
			{Rank: 3, ID: "gamma", Name: "Gamma", Score: 2.1, Price: 0.01},
		},
	}
}

func TestSnapshot_HotPicks(t *testing.T) {
	s := testSnapshot()

	picks := s.HotPicks()

	require.Len(t, picks, 1, "score equal to the threshold is not a hot pick")
	assert.Equal(t, "alpha", picks[0].ID)

	s.ScoreThreshold = 0
	assert.Len(t, s.HotPicks(), 3)

	var nilSnap *Snapshot
	assert.Nil(t, nilSnap.HotPicks())
	assert.True(t, nilSnap.Empty())
}

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Snapshot)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *Snapshot) {}},
		{name: "empty results are valid", mutate: func(s *Snapshot) { s.Results = nil }},
		{name: "missing id", mutate: func(s *Snapshot) { s.ID = "" }, wantErr: true},
		{name: "missing category", mutate: func(s *Snapshot) { s.Category = "" }, wantErr: true},
		{name: "rank gap", mutate: func(s *Snapshot) { s.Results[1].Rank = 3 }, wantErr: true},
		{name: "unsorted scores", mutate: func(s *Snapshot) { s.Results[2].Score = 9 }, wantErr: true},
		{name: "empty coin id", mutate: func(s *Snapshot) { s.Results[0].ID = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSnapshot()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSnapshot_ScorePoints(t *testing.T) {
	s := testSnapshot()

	points := s.ScorePoints()

	require.Len(t, points, 3)
	assert.Equal(t, ScorePoint{
		SnapshotID:  "snap-1",
		CoinID:      "beta",
		Rank:        2,
		Score:       5.0,
		Price:       0.3,
		GeneratedAt: s.GeneratedAt.UnixMilli(),
	}, points[1])
}
