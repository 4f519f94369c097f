// Package dashboard runs the refresh pipeline and holds the current ranking.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/events"
	"github.com/status-im/solscope/metrics"
	"github.com/status-im/solscope/scheduler"
	"github.com/status-im/solscope/scoring"
	"github.com/status-im/solscope/sentiment"
	"github.com/status-im/solscope/storage"
)

// MarketsFetcher returns the coins of the first category that can be fetched.
type MarketsFetcher interface {
	FetchWithFallback(ctx context.Context, preferred string) (string, []domain.MarketCoin, error)
}

// Options control how the service is driven.
type Options struct {
	// RefreshOnStart runs one refresh synchronously inside Start.
	RefreshOnStart bool
}

// Service represents the dashboard pipeline
type Service struct {
	config   *config.Config
	markets  MarketsFetcher
	analyzer sentiment.Analyzer
	store    storage.SnapshotStore
	opts     Options

	bus           *events.Bus[*domain.Snapshot]
	scheduler     *scheduler.Scheduler
	metricsWriter *metrics.MetricsWriter
	now           func() time.Time

	// serializes refreshes coming from the scheduler and the http handler
	refreshMu sync.Mutex

	state struct {
		sync.RWMutex
		snapshot *domain.Snapshot
		category string
	}
}

// NewService creates the dashboard service. analyzer and store may be nil: a nil
// analyzer disables sentiment, a nil store disables history.
func NewService(cfg *config.Config, markets MarketsFetcher, analyzer sentiment.Analyzer, store storage.SnapshotStore, opts Options) *Service {
	s := &Service{
		config:   cfg,
		markets:  markets,
		analyzer: analyzer,
		store:    store,
		opts:     opts,
		bus:      events.NewBus[*domain.Snapshot](),
		now:      time.Now,

		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceDashboard),
	}
	s.state.category = cfg.Markets.Category
	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.markets == nil {
		return fmt.Errorf("markets fetcher not provided")
	}

	s.restoreLatest(ctx)

	if s.opts.RefreshOnStart {
		if _, err := s.Refresh(ctx); err != nil {
			zap.L().Warn("initial refresh failed", zap.Error(err))
		}
	}

	if interval := s.config.Server.RefreshInterval; interval > 0 {
		s.scheduler = scheduler.New("dashboard-refresh", interval, func(ctx context.Context) error {
			_, err := s.Refresh(ctx)
			return err
		})
		s.scheduler.Start(ctx, false)
		zap.L().Info("periodic refresh enabled", zap.Duration("interval", interval))
	}
	return nil
}

// restoreLatest seeds the current snapshot from the store so the dashboard
// survives a restart.
func (s *Service) restoreLatest(ctx context.Context) {
	if s.store == nil || s.Current() != nil {
		return
	}
	snap, err := s.store.Latest(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			zap.L().Warn("failed to restore latest snapshot", zap.Error(err))
		}
		return
	}

	s.state.Lock()
	if s.state.snapshot == nil {
		s.state.snapshot = snap
		s.state.category = snap.Category
	}
	s.state.Unlock()
	zap.L().Info("restored latest snapshot", zap.String("id", snap.ID), zap.String("category", snap.Category))
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Healthy reports whether a snapshot has been produced.
func (s *Service) Healthy() bool {
	return s.Current() != nil
}

// Current returns the latest snapshot, or nil before the first successful refresh.
func (s *Service) Current() *domain.Snapshot {
	s.state.RLock()
	defer s.state.RUnlock()
	return s.state.snapshot
}

// Category returns the category the next refresh starts from.
func (s *Service) Category() string {
	s.state.RLock()
	defer s.state.RUnlock()
	return s.state.category
}

// SubscribeOnUpdate delivers every new snapshot. Slow readers only see the latest one.
func (s *Service) SubscribeOnUpdate() events.ISubscription[*domain.Snapshot] {
	return s.bus.Subscribe()
}

func (s *Service) sentimentEnabled() bool {
	return s.analyzer != nil && s.config.Sentiment.Enabled
}

// Refresh fetches, scores and publishes a new snapshot. When every category fails the
// current snapshot is kept and the error wraps coingecko_markets.ErrAllCategoriesFailed.
func (s *Service) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := s.now()
	preferred := s.Category()

	category, coins, err := s.markets.FetchWithFallback(ctx, preferred)
	if err != nil {
		metrics.RecordRefresh(preferred, false)
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	if category != preferred {
		zap.L().Info("switched category", zap.String("from", preferred), zap.String("to", category))
	}

	var sentiments map[string]float64
	if s.sentimentEnabled() {
		subjects := make([]sentiment.Subject, 0, len(coins))
		for _, c := range coins {
			if c.CurrentPrice < s.config.Scoring.MinPrice {
				continue
			}
			subjects = append(subjects, sentiment.Subject{
				ID:        c.ID,
				Name:      c.Name,
				Symbol:    c.Symbol,
				Category:  category,
				Change24h: c.PriceChangePercentage24h,
			})
		}
		sentiments = sentiment.AnalyzeAll(ctx, s.analyzer, subjects, s.config.Sentiment.Concurrency, s.config.Sentiment.Timeout)
	}

	snapshot := &domain.Snapshot{
		ID:               uuid.NewString(),
		Category:         category,
		Chain:            config.ChainForCategory(category),
		ScoreThreshold:   s.config.Scoring.ScoreThreshold,
		SentimentEnabled: s.sentimentEnabled(),
		Considered:       len(coins),
		GeneratedAt:      s.now().UTC(),
		Results:          scoring.Rank(coins, sentiments, s.config.Scoring),
	}

	s.state.Lock()
	s.state.snapshot = snapshot
	s.state.category = category
	s.state.Unlock()

	if s.store != nil {
		if err := s.store.Insert(ctx, snapshot); err != nil {
			zap.L().Error("failed to save snapshot", zap.String("id", snapshot.ID), zap.Error(err))
		}
	}

	s.bus.Emit(ctx, snapshot)

	hotPicks := snapshot.HotPicks()
	topScore := 0.0
	if !snapshot.Empty() {
		topScore = snapshot.Results[0].Score
	}
	metrics.RecordRefresh(category, true)
	metrics.RecordRanking(category, len(snapshot.Results), len(hotPicks), topScore)
	s.metricsWriter.RecordDataFetchCycle(s.now().Sub(start))
	s.metricsWriter.RecordCacheSize(len(snapshot.Results))

	zap.L().Info("dashboard refreshed",
		zap.String("category", category),
		zap.Int("considered", snapshot.Considered),
		zap.Int("ranked", len(snapshot.Results)),
		zap.Int("hot_picks", len(hotPicks)),
		zap.Duration("took", s.now().Sub(start)))

	return snapshot, nil
}

