// Package storetest is a conformance suite run against every SnapshotStore backend.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/storage"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// NewSnapshot builds a valid snapshot generated `minutes` after a fixed base time.
func NewSnapshot(id string, minutes int, coinIDs ...string) *domain.Snapshot {
	sentiment := 0.25
	results := make([]domain.RankedCoin, 0, len(coinIDs))
	for i, coinID := range coinIDs {
		results = append(results, domain.RankedCoin{
			Rank:              i + 1,
			ID:                coinID,
			Symbol:            coinID,
			Name:              "Coin " + coinID,
			Price:             1.5 + float64(i),
			Change24h:         4.2,
			Volume:            2_000_000,
			MarketCap:         50_000_000,
			Score:             float64(9 - i),
			Sentiment:         &sentiment,
			CirculatingSupply: 100,
			TotalSupply:       200,
		})
	}
	return &domain.Snapshot{
		ID:               id,
		Category:         "artificial-intelligence",
		Chain:            "solana",
		ScoreThreshold:   5,
		SentimentEnabled: true,
		Considered:       50,
		GeneratedAt:      base.Add(time.Duration(minutes) * time.Minute),
		Results:          results,
	}
}

// Run exercises the SnapshotStore contract. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) storage.SnapshotStore) {
	ctx := context.Background()

	t.Run("InsertAndGetByID", func(t *testing.T) {
		store := newStore(t)
		snap := NewSnapshot("snap-1", 0, "fetch-ai", "bittensor")

		require.NoError(t, store.Insert(ctx, snap))

		got, err := store.GetByID(ctx, "snap-1")
		require.NoError(t, err)
		if diff := cmp.Diff(snap, got); diff != "" {
			t.Errorf("GetByID mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("EmptyResults", func(t *testing.T) {
		store := newStore(t)
		snap := NewSnapshot("snap-empty", 0)

		require.NoError(t, store.Insert(ctx, snap))

		got, err := store.GetByID(ctx, "snap-empty")
		require.NoError(t, err)
		assert.Empty(t, got.Results)
	})

	t.Run("InsertDuplicate", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Insert(ctx, NewSnapshot("dup", 0, "a")))

		err := store.Insert(ctx, NewSnapshot("dup", 1, "b"))
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("InsertInvalid", func(t *testing.T) {
		store := newStore(t)
		snap := NewSnapshot("", 0, "a")

		assert.ErrorIs(t, store.Insert(ctx, snap), storage.ErrInvalidInput)
	})

	t.Run("NotFound", func(t *testing.T) {
		store := newStore(t)

		_, err := store.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.Latest(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("LatestAndList", func(t *testing.T) {
		store := newStore(t)
		for i := 0; i < 4; i++ {
			require.NoError(t, store.Insert(ctx, NewSnapshot(fmt.Sprintf("s%d", i), i, "a")))
		}

		latest, err := store.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "s3", latest.ID)

		all, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"s3", "s2", "s1", "s0"}, ids(all))

		two, err := store.List(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"s3", "s2"}, ids(two))
	})

	t.Run("CoinScores", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Insert(ctx, NewSnapshot("s0", 0, "a", "b")))
		require.NoError(t, store.Insert(ctx, NewSnapshot("s1", 1, "b", "a")))
		require.NoError(t, store.Insert(ctx, NewSnapshot("s2", 2, "c")))

		points, err := store.CoinScores(ctx, "a", 0)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, domain.ScorePoint{
			SnapshotID:  "s1",
			CoinID:      "a",
			Rank:        2,
			Score:       8,
			Price:       2.5,
			GeneratedAt: base.Add(time.Minute).UnixMilli(),
		}, points[0])
		assert.Equal(t, "s0", points[1].SnapshotID)
		assert.Equal(t, 1, points[1].Rank)

		limited, err := store.CoinScores(ctx, "a", 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		none, err := store.CoinScores(ctx, "zzz", 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func ids(snaps []*domain.Snapshot) []string {
	out := make([]string, len(snaps))
	for i, s := range snaps {
		out[i] = s.ID
	}
	return out
}
