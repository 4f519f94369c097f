package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// GoCache is a byte-slice store on top of go-cache.
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a new GoCache instance
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the value for key. Values of another type count as missing.
func (gc *GoCache) Get(key string) ([]byte, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := value.([]byte)
	return data, ok
}

// Set stores value. A zero timeout uses the default expiration.
func (gc *GoCache) Set(key string, value []byte, timeout time.Duration) {
	if timeout == 0 {
		timeout = cache.DefaultExpiration
	}
	gc.cache.Set(key, value, timeout)
}

func (gc *GoCache) Delete(keys ...string) {
	for _, key := range keys {
		gc.cache.Delete(key)
	}
}

func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}
