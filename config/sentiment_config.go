package config

import (
	"fmt"
	"time"
)

const (
	SentimentProviderMock      = "mock"
	SentimentProviderAnthropic = "anthropic"
	SentimentProviderGemini    = "gemini"
)

type SentimentConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	CacheSize   int64         `yaml:"cache_size"`

	// Keys come from ANTHROPIC_API_KEY / GEMINI_API_KEY unless set here.
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	GeminiAPIKey    string `yaml:"gemini_api_key"`
}

func DefaultSentimentConfig() SentimentConfig {
	return SentimentConfig{
		Enabled:     true,
		Provider:    SentimentProviderMock,
		Concurrency: 4,
		Timeout:     15 * time.Second,
		CacheTTL:    10 * time.Minute,
		CacheSize:   10_000,
	}
}

func (c *SentimentConfig) Validate() error {
	switch c.Provider {
	case SentimentProviderMock, SentimentProviderAnthropic, SentimentProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative")
	}
	return nil
}
