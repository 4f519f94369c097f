package cache

import "time"

// Config represents cache configuration
type Config struct {
	GoCache GoCacheConfig `yaml:"go_cache"`
}

// GoCacheConfig configuration for in-memory go-cache
type GoCacheConfig struct {
	// DefaultExpiration applies when a caller passes a zero TTL.
	DefaultExpiration time.Duration `yaml:"default_expiration"`

	// CleanupInterval should be longer than most TTLs stored in the cache.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// Enabled turns caching on. A disabled cache calls the loader every time.
	Enabled bool `yaml:"enabled"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		GoCache: GoCacheConfig{
			DefaultExpiration: 5 * time.Minute,
			CleanupInterval:   10 * time.Minute,
			Enabled:           true,
		},
	}
}
