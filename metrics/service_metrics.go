package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "solscope_"

// Service constants
const (
	ServiceMarkets   = "markets"
	ServiceDashboard = "dashboard"
	ServiceSentiment = "sentiment"
	ServiceWallet    = "wallet"
	ServiceSolanaRPC = "solana-rpc"
	ServiceAPI       = "api"
)

var (
	// Global Coingecko request counter (all services)
	// Cardinality: ~5 (success, error, rate_limited, timeout, etc.)
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API across all services",
		},
		[]string{"status"},
	)

	// Outbound request counter per service (Coingecko, Solana RPC)
	// Cardinality: ~15 (3 services × 5 statuses)
	ServiceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_requests_total",
			Help: "Total number of outbound HTTP requests per service",
		},
		[]string{"service", "status"},
	)

	// Data fetch cycle duration per service
	DataFetchCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "data_fetch_cycle_duration_seconds",
			Help: "Time taken to complete a full data fetch cycle",
		},
		[]string{"service"},
	)

	// Service cache size
	ServiceCacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "service_cache_size",
			Help: "Number of items in service cache",
		},
		[]string{"service"},
	)

	// Request latency per endpoint
	// Cardinality: ~15 (api routes plus outbound endpoints)
	RequestLatencyHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "request_latency_seconds",
			Help: "HTTP request latency by service and endpoint",
		},
		[]string{"service", "endpoint"},
	)

	// Retry attempts counter
	ServiceRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_retry_attempts_total",
			Help: "Total number of retry attempts per service",
		},
		[]string{"service"},
	)

	// Refresh outcomes per category
	// Cardinality: ~10 (5 categories × success/failed)
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "refresh_total",
			Help: "Dashboard refreshes by category and result",
		},
		[]string{"category", "result"},
	)

	// Category switches caused by fetch failures
	CategoryFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "category_fallback_total",
			Help: "Number of times the dashboard fell back to another category",
		},
		[]string{"from", "to"},
	)

	RankedCoinsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "ranked_coins",
			Help: "Number of coins in the latest ranking",
		},
		[]string{"category"},
	)

	HotPicksGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "hot_picks",
			Help: "Number of coins above the score threshold in the latest ranking",
		},
		[]string{"category"},
	)

	TopScoreGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "top_score",
			Help: "Highest score in the latest ranking",
		},
		[]string{"category"},
	)

	// Cardinality: ~9 (3 providers × ok/error/cached)
	SentimentRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "sentiment_requests_total",
			Help: "Sentiment lookups by provider and result",
		},
		[]string{"provider", "result"},
	)

	WalletLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "wallet_lookups_total",
			Help: "Wallet lookups by result",
		},
		[]string{"result"},
	)

	// Cardinality: ~40 (4 drivers × 5 operations × ok/error)
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "store_operations_total",
			Help: "Snapshot store operations by driver, operation and result",
		},
		[]string{"driver", "operation", "result"},
	)

	WebsocketClientsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "websocket_clients",
			Help: "Number of connected dashboard websocket clients",
		},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordRequest records an outbound request. Markets requests also feed the global Coingecko counter.
func (mw *MetricsWriter) RecordRequest(status string) {
	if mw.serviceName == ServiceMarkets {
		CoingeckoRequestsTotal.WithLabelValues(status).Inc()
	}
	ServiceRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordDataFetchCycle records the duration of a data fetch cycle
func (mw *MetricsWriter) RecordDataFetchCycle(duration time.Duration) {
	DataFetchCycleDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	zap.L().Debug("data fetch cycle finished",
		zap.String("service", mw.serviceName), zap.Duration("duration", duration))
}

// RecordCacheSize records the number of items in service cache
func (mw *MetricsWriter) RecordCacheSize(size int) {
	ServiceCacheSizeGauge.WithLabelValues(mw.serviceName).Set(float64(size))
}

// RecordRetryAttempt records a retry attempt
func (mw *MetricsWriter) RecordRetryAttempt() {
	ServiceRetryCounter.WithLabelValues(mw.serviceName).Inc()
}

// RecordLatency records how long a request to endpoint took
func (mw *MetricsWriter) RecordLatency(endpoint string, d time.Duration) {
	RequestLatencyHistogram.WithLabelValues(mw.serviceName, endpoint).Observe(d.Seconds())
}

// OnRequest implements the HTTP status handler used by retrying clients
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordRequest(status)
}

// OnRetry implements the HTTP status handler used by retrying clients
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}

// RecordRefresh records the outcome of a dashboard refresh
func RecordRefresh(category string, ok bool) {
	result := "success"
	if !ok {
		result = "failed"
	}
	RefreshTotal.WithLabelValues(category, result).Inc()
}

// RecordRanking records the shape of the latest ranking
func RecordRanking(category string, ranked, hotPicks int, topScore float64) {
	RankedCoinsGauge.WithLabelValues(category).Set(float64(ranked))
	HotPicksGauge.WithLabelValues(category).Set(float64(hotPicks))
	TopScoreGauge.WithLabelValues(category).Set(topScore)
}

// RecordCategoryFallback records a switch from one category to another
func RecordCategoryFallback(from, to string) {
	CategoryFallbackTotal.WithLabelValues(from, to).Inc()
}

// RecordSentiment records a sentiment lookup. result is "success", "error" or "cached".
func RecordSentiment(provider, result string) {
	SentimentRequestsTotal.WithLabelValues(provider, result).Inc()
}

// RecordWalletLookup records a wallet lookup. result is "success", "invalid", "error" or "cached".
func RecordWalletLookup(result string) {
	WalletLookupsTotal.WithLabelValues(result).Inc()
}

// RecordStoreOperation records a snapshot store call
func RecordStoreOperation(driver, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOperationsTotal.WithLabelValues(driver, operation, result).Inc()
}

// SetWebsocketClients records the number of live dashboard connections
func SetWebsocketClients(n int) {
	WebsocketClientsGauge.Set(float64(n))
}
