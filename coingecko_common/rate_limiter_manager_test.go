package coingecko_common

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/status-im/solscope/config"
)

func testAPIKeyConfig() config.APIKeyConfig {
	return config.APIKeyConfig{
		Pro:   config.RateLimit{RateLimitPerMinute: 300, Burst: 10},
		Demo:  config.RateLimit{RateLimitPerMinute: 60, Burst: 2},
		NoKey: config.RateLimit{RateLimitPerMinute: 30, Burst: 1},
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestRateLimiterManager_GetLimiterForURL(t *testing.T) {
	manager := NewRateLimiterManager(testAPIKeyConfig(), "http://127.0.0.1:9999")

	tests := []struct {
		name      string
		url       string
		wantLimit rate.Limit
		wantBurst int
		wantNil   bool
	}{
		{"pro key", "https://pro-api.coingecko.com/api/v3/coins/markets?x_cg_pro_api_key=k", rate.Limit(5), 10, false},
		{"demo key", "https://api.coingecko.com/api/v3/coins/markets?x_cg_demo_api_key=k", rate.Limit(1), 2, false},
		{"public host", "https://api.coingecko.com/api/v3/coins/markets", rate.Limit(0.5), 1, false},
		{"override host", "http://127.0.0.1:9999/api/v3/coins/markets", rate.Limit(0.5), 1, false},
		{"unrelated host", "https://example.com/x", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lim := manager.GetLimiterForURL(mustParse(t, tt.url))
			if tt.wantNil {
				assert.Nil(t, lim)
				return
			}
			require.NotNil(t, lim)
			assert.InDelta(t, float64(tt.wantLimit), float64(lim.Limit()), 1e-9)
			assert.Equal(t, tt.wantBurst, lim.Burst())
		})
	}

	var nilManager *RateLimiterManager
	assert.Nil(t, nilManager.GetLimiterForURL(mustParse(t, "https://api.coingecko.com")))
}

func TestRateLimiterManager_SameKeySameLimiter(t *testing.T) {
	manager := NewRateLimiterManager(testAPIKeyConfig())
	a := manager.GetLimiterForURL(mustParse(t, "https://api.coingecko.com/x?x_cg_demo_api_key=one"))
	b := manager.GetLimiterForURL(mustParse(t, "https://api.coingecko.com/y?x_cg_demo_api_key=one"))
	c := manager.GetLimiterForURL(mustParse(t, "https://api.coingecko.com/y?x_cg_demo_api_key=two"))

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestRateLimiterManager_SetConfig(t *testing.T) {
	manager := NewRateLimiterManager(testAPIKeyConfig())
	pro := manager.GetLimiterForURL(mustParse(t, "https://pro-api.coingecko.com/x?x_cg_pro_api_key=k"))
	demo := manager.GetLimiterForURL(mustParse(t, "https://api.coingecko.com/x?x_cg_demo_api_key=k"))

	cfg := testAPIKeyConfig()
	cfg.Pro = config.RateLimit{RateLimitPerMinute: 600}
	manager.SetConfig(cfg)

	newPro := manager.GetLimiterForURL(mustParse(t, "https://pro-api.coingecko.com/x?x_cg_pro_api_key=k"))
	sameDemo := manager.GetLimiterForURL(mustParse(t, "https://api.coingecko.com/x?x_cg_demo_api_key=k"))

	assert.NotSame(t, pro, newPro)
	assert.InDelta(t, 10.0, float64(newPro.Limit()), 1e-9)
	assert.Equal(t, 10, newPro.Burst(), "burst defaults to ceil(limit)")
	assert.Same(t, demo, sameDemo)
}

func TestRateLimiterManager_Defaults(t *testing.T) {
	manager := NewRateLimiterManager(config.APIKeyConfig{})
	lim := manager.GetLimiterForURL(mustParse(t, "https://pro-api.coingecko.com/x?x_cg_pro_api_key=k"))

	assert.InDelta(t, float64(defaultProRPM)/60.0, float64(lim.Limit()), 1e-9)
	assert.Equal(t, 9, lim.Burst())
}
