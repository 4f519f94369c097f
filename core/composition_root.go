package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/status-im/solscope/api"
	"github.com/status-im/solscope/cache"
	cg "github.com/status-im/solscope/coingecko_common"
	"github.com/status-im/solscope/coingecko_markets"
	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/dashboard"
	"github.com/status-im/solscope/sentiment"
	"github.com/status-im/solscope/solana"
	"github.com/status-im/solscope/storage"
	"github.com/status-im/solscope/storage/factory"
	"github.com/status-im/solscope/wallet"
)

// Options select which parts of the application Setup builds.
type Options struct {
	// RefreshOnStart makes the dashboard refresh synchronously when started.
	RefreshOnStart bool
	// WithServer registers the HTTP server.
	WithServer bool
	// WatchTokens reloads API tokens when the tokens file changes.
	WatchTokens bool
}

// App holds the wired services. Services are started through Registry.
type App struct {
	Registry  *Registry
	Config    *config.Config
	Cache     *cache.Service
	Markets   *coingecko_markets.Service
	Store     storage.SnapshotStore
	Dashboard *dashboard.Service
	Wallet    *wallet.Service
	Server    *api.Server

	analyzer *sentiment.CachedAnalyzer
}

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	registry := NewRegistry()
	app := &App{Registry: registry, Config: cfg}

	// Create Cache service
	cacheService := cache.NewService(cfg.Cache)
	registry.Register("cache", cacheService)
	app.Cache = cacheService

	// Key manager and rate limiters shared by every CoinGecko request
	keyManager := cg.NewAPIKeyManager(cfg.APITokens)
	limiterManager := cg.NewRateLimiterManager(cfg.APIKeyConfig, cfg.OverrideCoingeckoPublicURL, cfg.OverrideCoingeckoProURL)

	if opts.WatchTokens && cfg.TokensFile != "" {
		watcher := config.NewTokensWatcher(cfg.TokensFile, func(tokens *config.APITokens) {
			keyManager.SetTokens(tokens)
			zap.L().Info("API tokens reloaded",
				zap.Int("pro", len(tokens.Tokens)), zap.Int("demo", len(tokens.DemoTokens)))
		})
		registry.Register("tokens-watcher", watcher)
	}

	// Create CoinGecko Markets service with cache dependency
	marketsClient := coingecko_markets.NewCoinGeckoClient(cfg, keyManager, limiterManager)
	marketsService := coingecko_markets.NewService(cacheService, cfg, marketsClient)
	registry.Register("markets", marketsService)
	app.Markets = marketsService

	var analyzer sentiment.Analyzer
	if cfg.Sentiment.Enabled {
		cached, err := sentiment.New(ctx, cfg.Sentiment)
		if err != nil {
			return nil, fmt.Errorf("sentiment: %w", err)
		}
		app.analyzer = cached
		analyzer = cached
	}

	store, err := factory.Open(ctx, cfg.Storage)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}
	app.Store = store

	dashboardService := dashboard.NewService(cfg, marketsService, analyzer, store, dashboard.Options{
		RefreshOnStart: opts.RefreshOnStart,
	})
	registry.Register("dashboard", dashboardService)
	app.Dashboard = dashboardService

	rpcClient := solana.NewHTTPClient(cfg.Solana.RPCURL,
		solana.WithTimeout(cfg.Solana.Timeout),
		solana.WithMaxRetries(cfg.Solana.MaxRetries),
	)
	walletService := wallet.NewService(rpcClient, cacheService, cfg.Solana.WalletCacheTTL)
	registry.Register("wallet", walletService)
	app.Wallet = walletService

	if opts.WithServer {
		server := api.New(cfg, dashboardService, store, walletService, registry)
		registry.Register("api", server)
		app.Server = server
	}

	return app, nil
}

// Close releases resources that are not owned by a registered service.
func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	if a.analyzer != nil {
		a.analyzer.Close()
	}
	return errors.Join(errs...)
}
