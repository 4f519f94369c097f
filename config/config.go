package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/status-im/solscope/cache"
)

// DefaultPath is used when no config file is given on the command line.
const DefaultPath = "config.yaml"

type Config struct {
	TokensFile string     `yaml:"tokens_file"`
	APITokens  *APITokens `yaml:"-"`

	OverrideCoingeckoPublicURL string `yaml:"override_coingecko_public_url"`
	OverrideCoingeckoProURL    string `yaml:"override_coingecko_pro_url"`

	APIKeyConfig APIKeyConfig    `yaml:"api_key_config"`
	Cache        cache.Config    `yaml:"cache"`
	Markets      MarketsConfig   `yaml:"markets"`
	Scoring      ScoringConfig   `yaml:"scoring"`
	Sentiment    SentimentConfig `yaml:"sentiment"`
	Server       ServerConfig    `yaml:"server"`
	Storage      StorageConfig   `yaml:"storage"`
	Solana       SolanaConfig    `yaml:"solana"`
	Log          LogConfig       `yaml:"log"`
}

// Default returns a configuration that runs without any config file.
func Default() *Config {
	return &Config{
		TokensFile:   "coingecko_api_tokens.json",
		APITokens:    &APITokens{Tokens: []string{}},
		APIKeyConfig: DefaultAPIKeyConfig(),
		Cache:        cache.DefaultCacheConfig(),
		Markets:      DefaultMarketsConfig(),
		Scoring:      DefaultScoringConfig(),
		Sentiment:    DefaultSentimentConfig(),
		Server:       DefaultServerConfig(),
		Storage:      DefaultStorageConfig(),
		Solana:       DefaultSolanaConfig(),
		Log:          DefaultLogConfig(),
	}
}

// LoadConfig reads the YAML file at path over the defaults, loads API tokens and
// applies environment overrides. A missing file is tolerated only for DefaultPath.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
		zap.L().Debug("config file not found, using defaults", zap.String("path", path))
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	apiTokens, err := LoadAPITokens(cfg.TokensFile)
	if err != nil {
		zap.L().Warn("error loading API tokens, using public API without authentication",
			zap.String("file", cfg.TokensFile), zap.Error(err))
		cfg.APITokens = &APITokens{Tokens: []string{}}
	} else {
		cfg.APITokens = apiTokens
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			c.Server.Port = p
		} else {
			zap.L().Warn("ignoring invalid PORT", zap.String("value", port))
		}
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && c.Sentiment.AnthropicAPIKey == "" {
		c.Sentiment.AnthropicAPIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && c.Sentiment.GeminiAPIKey == "" {
		c.Sentiment.GeminiAPIKey = key
	}
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []struct {
		section string
		fn      func() error
	}{
		{"api_key_config", c.APIKeyConfig.Validate},
		{"markets", c.Markets.Validate},
		{"scoring", c.Scoring.Validate},
		{"sentiment", c.Sentiment.Validate},
		{"server", c.Server.Validate},
		{"storage", c.Storage.Validate},
		{"solana", c.Solana.Validate},
		{"log", c.Log.Validate},
	}
	for _, v := range validators {
		if err := v.fn(); err != nil {
			return fmt.Errorf("invalid %s config: %w", v.section, err)
		}
	}
	return nil
}
