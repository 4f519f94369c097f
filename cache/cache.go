package cache

import (
	"context"
	"time"
)

// Loader produces the value for a key that is not cached.
type Loader func(ctx context.Context) ([]byte, error)

// Cache stores serialized values by key.
type Cache interface {
	// GetOrLoad returns the cached value for key or calls loader, caching its result for ttl.
	// Concurrent calls for the same missing key share one loader call.
	// hit reports whether the value came from the cache.
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) (value []byte, hit bool, err error)

	// Get returns the cached value for key.
	Get(key string) ([]byte, bool)

	// Set stores value for ttl; a zero ttl uses the default expiration.
	Set(key string, value []byte, ttl time.Duration)

	// Delete removes keys.
	Delete(keys ...string)
}
