package coingecko_markets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	cg "github.com/status-im/solscope/coingecko_common"
	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/metrics"
)

// ErrEmptyCategory is returned when CoinGecko answers with an empty list.
var ErrEmptyCategory = errors.New("category returned no coins")

//go:generate mockgen -destination=mocks/api_client.go . APIClient

// APIClient fetches one category ranking page
type APIClient interface {
	FetchCategory(ctx context.Context, category string) ([]domain.MarketCoin, error)
	// Healthy reports whether at least one fetch has succeeded
	Healthy() bool
}

// CoinGeckoClient implements APIClient for CoinGecko
type CoinGeckoClient struct {
	config          *config.Config
	keyManager      cg.IAPIKeyManager
	httpClient      *cg.HTTPClientWithRetries
	successfulFetch atomic.Bool
}

// NewCoinGeckoClient creates a new CoinGecko API client
func NewCoinGeckoClient(cfg *config.Config, keyManager cg.IAPIKeyManager, limiterManager cg.IRateLimiterManager) *CoinGeckoClient {
	retryOpts := cg.DefaultRetryOptions()
	retryOpts.LogPrefix = "CoinGecko"
	if cfg.Markets.MaxRetries > 0 {
		retryOpts.MaxRetries = cfg.Markets.MaxRetries
	}

	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceMarkets)

	return &CoinGeckoClient{
		config:     cfg,
		keyManager: keyManager,
		httpClient: cg.NewHTTPClientWithRetries(retryOpts, metricsWriter, limiterManager),
	}
}

// Healthy checks if the API has had at least one successful fetch
func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchCategory fetches the first page of a category ranking, trying each available key.
func (c *CoinGeckoClient) FetchCategory(ctx context.Context, category string) ([]domain.MarketCoin, error) {
	executor := func(apiKey cg.APIKey) ([]domain.MarketCoin, error) {
		request, err := NewMarketRequestBuilder(cg.GetApiBaseUrl(c.config, apiKey.Type)).
			WithCurrency(c.config.Markets.Currency).
			WithPerPage(c.config.Markets.PerPage).
			WithCategory(category).
			WithApiKey(apiKey).
			Build(ctx)
		if err != nil {
			return nil, err
		}

		body, duration, err := c.httpClient.ExecuteRequest(request)
		if err != nil {
			return nil, err
		}

		var coins []domain.MarketCoin
		if err := json.Unmarshal(body, &coins); err != nil {
			return nil, fmt.Errorf("decode markets response: %w", err)
		}

		zap.L().Debug("fetched category",
			zap.String("category", category),
			zap.Stringer("key_type", apiKey.Type),
			zap.Int("coins", len(coins)),
			zap.Duration("duration", duration))
		return coins, nil
	}

	coins, err := cg.TryWithKeys(c.keyManager.GetAvailableKeys(), "CoinGecko", cg.CreateFailCallback(c.keyManager), executor)
	if err != nil {
		return nil, err
	}
	if len(coins) == 0 {
		return nil, fmt.Errorf("%s: %w", category, ErrEmptyCategory)
	}

	c.successfulFetch.Store(true)
	return coins, nil
}
