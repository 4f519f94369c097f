package coingecko_markets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/status-im/solscope/cache"
	cfg "github.com/status-im/solscope/config"
	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/metrics"
)

// ErrAllCategoriesFailed is returned by FetchWithFallback when no category produced coins.
var ErrAllCategoriesFailed = errors.New("all categories failed")

// Service provides category ranking fetching with caching and category fallback
type Service struct {
	cache         cache.Cache
	config        *cfg.Config
	metricsWriter *metrics.MetricsWriter
	apiClient     APIClient
}

func NewService(c cache.Cache, config *cfg.Config, apiClient APIClient) *Service {
	s := &Service{
		config:        config,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceMarkets),
		apiClient:     apiClient,
	}
	if c != nil {
		s.cache = cache.Namespaced(c, "markets")
	}
	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}
	if s.apiClient == nil {
		return fmt.Errorf("api client not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// Healthy checks if the service is operational
func (s *Service) Healthy() bool {
	if s.apiClient != nil {
		return s.apiClient.Healthy()
	}
	return false
}

func cacheKey(category, currency string) string {
	return fmt.Sprintf("%s:%s", category, currency)
}

// FetchCategory returns the ranking page of one category, served from cache while fresh.
func (s *Service) FetchCategory(ctx context.Context, category string) ([]domain.MarketCoin, error) {
	start := time.Now()
	data, hit, err := s.cache.GetOrLoad(ctx, cacheKey(category, s.config.Markets.Currency), s.config.Markets.TTL,
		func(ctx context.Context) ([]byte, error) {
			coins, err := s.apiClient.FetchCategory(ctx, category)
			if err != nil {
				return nil, err
			}
			return json.Marshal(coins)
		})
	if err != nil {
		return nil, err
	}
	if !hit {
		s.metricsWriter.RecordDataFetchCycle(time.Since(start))
	}

	var coins []domain.MarketCoin
	if err := json.Unmarshal(data, &coins); err != nil {
		return nil, fmt.Errorf("decode cached category %s: %w", category, err)
	}
	zap.L().Debug("category loaded", zap.String("category", category), zap.Bool("cache_hit", hit), zap.Int("coins", len(coins)))
	return coins, nil
}

// FetchWithFallback tries preferred first, then every other configured category in
// order, and returns the first one that yields coins.
func (s *Service) FetchWithFallback(ctx context.Context, preferred string) (string, []domain.MarketCoin, error) {
	var errs []error
	for i, category := range s.config.Markets.FallbackOrder(preferred) {
		if i > 0 {
			if err := sleepContext(ctx, s.config.Markets.RequestDelay); err != nil {
				return "", nil, err
			}
		}

		coins, err := s.FetchCategory(ctx, category)
		if err == nil {
			if category != preferred {
				zap.L().Warn("using fallback category", zap.String("preferred", preferred), zap.String("category", category))
				metrics.RecordCategoryFallback(preferred, category)
			}
			return category, coins, nil
		}

		if ctx.Err() != nil {
			return "", nil, ctx.Err()
		}
		zap.L().Warn("category fetch failed", zap.String("category", category), zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", category, err))
	}

	return "", nil, errors.Join(append([]error{ErrAllCategoriesFailed}, errs...)...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
