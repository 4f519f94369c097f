package coingecko_common

import (
	"math"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	"github.com/status-im/solscope/config"
)

// IRateLimiterManager provides a way to get a rate limiter for a request URL
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	GetLimiterForURL(u *url.URL) *rate.Limiter
	SetConfig(cfg config.APIKeyConfig)
}

type limiterKey struct {
	keyType KeyType
	key     string
}

// RateLimiterManager keeps one limiter per API key, sized by the key type's configuration
type RateLimiterManager struct {
	mu       sync.RWMutex
	limiters map[limiterKey]*rate.Limiter
	config   config.APIKeyConfig
	hosts    map[string]struct{}
}

// Defaults in requests per minute, used when config is not provided
const (
	defaultProRPM   = 500
	defaultDemoRPM  = 30
	defaultNoKeyRPM = 30
)

// NewRateLimiterManager creates a manager. Keyless requests are limited only for
// the CoinGecko hosts plus any extra base URLs given (configured overrides).
func NewRateLimiterManager(cfg config.APIKeyConfig, extraBaseURLs ...string) *RateLimiterManager {
	hosts := map[string]struct{}{
		"api.coingecko.com":     {},
		"pro-api.coingecko.com": {},
	}
	for _, raw := range extraBaseURLs {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
			hosts[u.Hostname()] = struct{}{}
		}
	}

	return &RateLimiterManager{
		limiters: make(map[limiterKey]*rate.Limiter),
		config:   cfg,
		hosts:    hosts,
	}
}

// SetConfig applies a new APIKeyConfig and rebuilds limiters whose type settings changed
func (m *RateLimiterManager) SetConfig(newCfg config.APIKeyConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldCfg := m.config
	m.config = newCfg

	changed := map[KeyType]bool{
		ProKey:  oldCfg.Pro != newCfg.Pro,
		DemoKey: oldCfg.Demo != newCfg.Demo,
		NoKey:   oldCfg.NoKey != newCfg.NoKey,
	}

	for k := range m.limiters {
		if changed[k.keyType] {
			m.limiters[k] = m.newLimiterLocked(k.keyType)
		}
	}
}

// GetLimiterForURL inspects the URL to determine key and type and returns the limiter
func (m *RateLimiterManager) GetLimiterForURL(u *url.URL) *rate.Limiter {
	if m == nil || u == nil {
		return nil
	}

	query := u.Query()
	if v := query.Get("x_cg_pro_api_key"); v != "" {
		return m.limiterFor(limiterKey{ProKey, v})
	}
	if v := query.Get("x_cg_demo_api_key"); v != "" {
		return m.limiterFor(limiterKey{DemoKey, v})
	}

	if _, known := m.hosts[u.Hostname()]; known {
		return m.limiterFor(limiterKey{NoKey, ""})
	}
	return nil
}

func (m *RateLimiterManager) limiterFor(k limiterKey) *rate.Limiter {
	m.mu.RLock()
	lim, ok := m.limiters[k]
	m.mu.RUnlock()
	if ok {
		return lim
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if lim, ok := m.limiters[k]; ok {
		return lim
	}
	lim = m.newLimiterLocked(k.keyType)
	m.limiters[k] = lim
	return lim
}

func (m *RateLimiterManager) settingsLocked(keyType KeyType) (rpm, burst int) {
	switch keyType {
	case ProKey:
		rpm, burst = m.config.Pro.RateLimitPerMinute, m.config.Pro.Burst
		if rpm <= 0 {
			rpm = defaultProRPM
		}
	case DemoKey:
		rpm, burst = m.config.Demo.RateLimitPerMinute, m.config.Demo.Burst
		if rpm <= 0 {
			rpm = defaultDemoRPM
		}
	default:
		rpm, burst = m.config.NoKey.RateLimitPerMinute, m.config.NoKey.Burst
		if rpm <= 0 {
			rpm = defaultNoKeyRPM
		}
	}
	return rpm, burst
}

func (m *RateLimiterManager) newLimiterLocked(keyType KeyType) *rate.Limiter {
	rpm, burst := m.settingsLocked(keyType)
	limit := rate.Limit(float64(rpm) / 60.0)
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	return rate.NewLimiter(limit, burst)
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
