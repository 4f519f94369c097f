package sentiment

import (
	"context"
	"fmt"

	"github.com/status-im/solscope/config"
)

// New builds the configured provider wrapped in a cache.
func New(ctx context.Context, cfg config.SentimentConfig) (*CachedAnalyzer, error) {
	var (
		base Analyzer
		err  error
	)

	switch cfg.Provider {
	case config.SentimentProviderMock, "":
		base = NewMockAnalyzer(0)
	case config.SentimentProviderAnthropic:
		base, err = NewClaudeAnalyzer(cfg.AnthropicAPIKey, cfg.Model)
	case config.SentimentProviderGemini:
		base, err = NewGeminiAnalyzer(ctx, cfg.GeminiAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown sentiment provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, err)
	}

	return NewCachedAnalyzer(base, cfg.CacheSize, cfg.CacheTTL)
}
