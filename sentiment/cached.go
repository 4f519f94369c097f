package sentiment

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

// CachedAnalyzer memoizes another analyzer's results per coin.
type CachedAnalyzer struct {
	next  Analyzer
	cache *ristretto.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedAnalyzer wraps next with a ristretto cache holding up to size entries.
func NewCachedAnalyzer(next Analyzer, size int64, ttl time.Duration) (*CachedAnalyzer, error) {
	if size <= 0 {
		size = 1000
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: size * 10,
		MaxCost:     size,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create sentiment cache: %w", err)
	}
	return &CachedAnalyzer{next: next, cache: c, ttl: ttl}, nil
}

func (c *CachedAnalyzer) Name() string { return c.next.Name() }

func (c *CachedAnalyzer) key(s Subject) string {
	return c.next.Name() + ":" + s.ID
}

func (c *CachedAnalyzer) Analyze(ctx context.Context, s Subject) (float64, error) {
	key := c.key(s)
	if v, ok := c.cache.Get(key); ok {
		return v.(float64), nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		score, err := c.next.Analyze(ctx, s)
		if err != nil {
			return nil, err
		}
		c.cache.SetWithTTL(key, score, 1, c.ttl)
		return score, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// Wait blocks until buffered cache writes are applied.
func (c *CachedAnalyzer) Wait() { c.cache.Wait() }

// Close releases the cache.
func (c *CachedAnalyzer) Close() { c.cache.Close() }
