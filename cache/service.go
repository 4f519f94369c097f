package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service implements Cache on go-cache and is registered with the core registry.
type Service struct {
	goCache *GoCache
	config  Config
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewService creates a new cache service with the given configuration
func NewService(config Config) *Service {
	return &Service{
		goCache: NewGoCache(config.GoCache.DefaultExpiration, config.GoCache.CleanupInterval),
		config:  config,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	zap.L().Info("cache service started",
		zap.Bool("enabled", s.config.GoCache.Enabled),
		zap.Duration("default_expiration", s.config.GoCache.DefaultExpiration))
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.goCache.Clear()
}

// GetOrLoad implements Cache.
func (s *Service) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, bool, error) {
	if !s.config.GoCache.Enabled {
		s.misses.Add(1)
		value, err := loader(ctx)
		return value, false, err
	}

	if value, ok := s.goCache.Get(key); ok {
		s.hits.Add(1)
		return value, true, nil
	}
	s.misses.Add(1)

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		if value, ok := s.goCache.Get(key); ok {
			return value, nil
		}
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.goCache.Set(key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return v.([]byte), false, nil
}

// Get implements Cache.
func (s *Service) Get(key string) ([]byte, bool) {
	if !s.config.GoCache.Enabled {
		return nil, false
	}
	return s.goCache.Get(key)
}

// Set implements Cache.
func (s *Service) Set(key string, value []byte, ttl time.Duration) {
	if !s.config.GoCache.Enabled {
		return
	}
	s.goCache.Set(key, value, ttl)
}

// Delete implements Cache.
func (s *Service) Delete(keys ...string) {
	s.goCache.Delete(keys...)
}

// Clear removes all items from cache
func (s *Service) Clear() {
	s.goCache.Clear()
}

// Stats returns statistics about the cache service
func (s *Service) Stats() ServiceStats {
	return ServiceStats{
		Items:   s.goCache.ItemCount(),
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Enabled: s.config.GoCache.Enabled,
	}
}

// ServiceStats represents cache service statistics
type ServiceStats struct {
	Items   int   `json:"items"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Enabled bool  `json:"enabled"`
}

// Namespaced returns a view of c that prefixes every key.
func Namespaced(c Cache, prefix string) Cache {
	return &namespaced{inner: c, prefix: prefix + ":"}
}

type namespaced struct {
	inner  Cache
	prefix string
}

func (n *namespaced) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, bool, error) {
	return n.inner.GetOrLoad(ctx, n.prefix+key, ttl, loader)
}

func (n *namespaced) Get(key string) ([]byte, bool) {
	return n.inner.Get(n.prefix + key)
}

func (n *namespaced) Set(key string, value []byte, ttl time.Duration) {
	n.inner.Set(n.prefix+key, value, ttl)
}

func (n *namespaced) Delete(keys ...string) {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = n.prefix + k
	}
	n.inner.Delete(prefixed...)
}
