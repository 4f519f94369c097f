// Package e2etest runs the full application against mock CoinGecko and Solana upstreams.
package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/solscope/config"
)

const configTemplate = `
tokens_file: "%s"

# URLs for API (mock)
override_coingecko_public_url: "%s"
override_coingecko_pro_url: "%s"

api_key_config:
  pro:
    rate_limit_per_minute: 6000
    burst: 10
  demo:
    rate_limit_per_minute: 6000
    burst: 10
  nokey:
    rate_limit_per_minute: 6000
    burst: 10

markets:
  category: artificial-intelligence
  categories:
    - solana-meme-coins
    - artificial-intelligence
    - layer-1
  per_page: 50
  ttl: 1ms                # every refresh reaches the mock
  request_delay: 10ms
  max_retries: 1

scoring:
  score_threshold: 5

sentiment:
  enabled: false

server:
  port: %d

storage:
  driver: sqlite
  dsn: "%s"

solana:
  rpc_url: "%s"
  timeout: 2s
  max_retries: 0
  wallet_cache_ttl: 1m

log:
  level: warn
`

// createTestConfig writes a config file and an empty tokens file into dir and
// returns the config path.
func createTestConfig(dir, mockURL string, port int) (string, error) {
	tokensFilePath := filepath.Join(dir, "tokens.json")
	if err := os.WriteFile(tokensFilePath, []byte(`{"api_tokens": []}`), 0o644); err != nil {
		return "", err
	}

	content := fmt.Sprintf(configTemplate,
		tokensFilePath,
		mockURL, mockURL,
		port,
		filepath.Join(dir, "history.db"),
		mockURL+rpcPath,
	)

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return "", err
	}
	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(dir, mockURL string, port int) (*config.Config, error) {
	configPath, err := createTestConfig(dir, mockURL, port)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
