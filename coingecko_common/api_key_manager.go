package coingecko_common

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/status-im/solscope/config"
)

// KeyType defines the API key type
type KeyType int

const (
	// NoKey means no API key is available
	NoKey KeyType = iota
	// ProKey means using a Pro API key
	ProKey
	// DemoKey means using a demo API key
	DemoKey
)

func (k KeyType) String() string {
	switch k {
	case ProKey:
		return "pro"
	case DemoKey:
		return "demo"
	default:
		return "none"
	}
}

// APIKey represents an API key with its type
type APIKey struct {
	Key  string
	Type KeyType
}

// IAPIKeyManager defines the interface for API key management
type IAPIKeyManager interface {
	// GetAvailableKeys returns keys in the order they should be tried:
	// Pro keys not in backoff (a single Pro key is always included),
	// then Demo keys not in backoff, then the keyless entry.
	GetAvailableKeys() []APIKey

	// MarkKeyAsFailed puts a key into backoff
	MarkKeyAsFailed(key string)
}

// APIKeyManager implements IAPIKeyManager for CoinGecko
type APIKeyManager struct {
	mu          sync.RWMutex
	pro         []string
	demo        []string
	lastFailed  map[string]time.Time
	backoffTime time.Duration
	now         func() time.Time
}

// NewAPIKeyManager creates a new API key manager
func NewAPIKeyManager(apiTokens *config.APITokens) *APIKeyManager {
	m := &APIKeyManager{
		lastFailed:  make(map[string]time.Time),
		backoffTime: 5 * time.Minute,
		now:         time.Now,
	}
	m.SetTokens(apiTokens)
	return m
}

// SetTokens replaces the key set. Backoff state is kept for keys that survive the swap.
func (m *APIKeyManager) SetTokens(apiTokens *config.APITokens) {
	var pro, demo []string
	if apiTokens != nil {
		pro = append(pro, apiTokens.Tokens...)
		demo = append(demo, apiTokens.DemoTokens...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pro = pro
	m.demo = demo

	keep := make(map[string]struct{}, len(pro)+len(demo))
	for _, k := range append(append([]string{}, pro...), demo...) {
		keep[k] = struct{}{}
	}
	for k := range m.lastFailed {
		if _, ok := keep[k]; !ok {
			delete(m.lastFailed, k)
		}
	}
}

func (m *APIKeyManager) inBackoffLocked(key string) bool {
	if lastFailTime, exists := m.lastFailed[key]; exists {
		return m.now().Sub(lastFailTime) < m.backoffTime
	}
	return false
}

// GetAvailableKeys implements IAPIKeyManager
func (m *APIKeyManager) GetAvailableKeys() []APIKey {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]APIKey, 0, len(m.pro)+len(m.demo)+1)

	if len(m.pro) == 1 {
		keys = append(keys, APIKey{Key: m.pro[0], Type: ProKey})
	} else {
		for _, key := range m.pro {
			if !m.inBackoffLocked(key) {
				keys = append(keys, APIKey{Key: key, Type: ProKey})
			}
		}
	}

	for _, key := range m.demo {
		if !m.inBackoffLocked(key) {
			keys = append(keys, APIKey{Key: key, Type: DemoKey})
		}
	}

	return append(keys, APIKey{Key: "", Type: NoKey})
}

// MarkKeyAsFailed implements IAPIKeyManager
func (m *APIKeyManager) MarkKeyAsFailed(key string) {
	if key == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFailed[key] = m.now()
	zap.L().Debug("api key marked as failed", zap.Duration("backoff", m.backoffTime))
}
