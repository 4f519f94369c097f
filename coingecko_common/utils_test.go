package coingecko_common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/status-im/solscope/config"
)

func TestGetApiBaseUrl(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		keyType     KeyType
		expectedURL string
	}{
		{"Pro key with default URL", &config.Config{}, ProKey, COINGECKO_PRO_URL},
		{"Pro key with overridden URL", &config.Config{OverrideCoingeckoProURL: "https://custom-pro.example.com"}, ProKey, "https://custom-pro.example.com"},
		{"Public key with default URL", &config.Config{}, NoKey, COINGECKO_PUBLIC_URL},
		{"Demo key uses public URL", &config.Config{}, DemoKey, COINGECKO_PUBLIC_URL},
		{"Public key with overridden URL", &config.Config{OverrideCoingeckoPublicURL: "https://custom-public.example.com"}, NoKey, "https://custom-public.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedURL, GetApiBaseUrl(tt.cfg, tt.keyType))
		})
	}
}
