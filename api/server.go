package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/events"
	"github.com/status-im/solscope/metrics"
	"github.com/status-im/solscope/storage"
)

// Dashboard is the pipeline the server exposes.
type Dashboard interface {
	Refresh(ctx context.Context) (*domain.Snapshot, error)
	Current() *domain.Snapshot
	Category() string
	SubscribeOnUpdate() events.ISubscription[*domain.Snapshot]
}

// WalletLookup summarizes a Solana wallet.
type WalletLookup interface {
	Lookup(ctx context.Context, address string) (*domain.WalletSummary, error)
}

// HealthReporter reports readiness per registered service.
type HealthReporter interface {
	Health() map[string]bool
}

type Server struct {
	config        *config.Config
	dashboard     Dashboard
	history       storage.SnapshotStore
	wallet        WalletLookup
	health        HealthReporter
	hub           *hub
	metricsWriter *metrics.MetricsWriter
	server        *http.Server
	updates       events.ISubscription[*domain.Snapshot]
	now           func() time.Time
}

// New creates the HTTP server. history, wallet and health may be nil.
func New(cfg *config.Config, dashboard Dashboard, history storage.SnapshotStore, wallet WalletLookup, health HealthReporter) *Server {
	return &Server{
		config:        cfg,
		dashboard:     dashboard,
		history:       history,
		wallet:        wallet,
		health:        health,
		hub:           newHub(),
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceAPI),
		now:           time.Now,
	}
}

// Router returns the handler serving every route.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(s.latencyMiddleware)

	router.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	router.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/export-csv", s.handleExportCSV).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", s.handleHistoryByID).Methods(http.MethodGet)
	api.HandleFunc("/coins/{id}/scores", s.handleCoinScores).Methods(http.MethodGet)
	api.HandleFunc("/wallet/{address}", s.handleWallet).Methods(http.MethodGet)

	router.HandleFunc("/ws", s.handleWebsocket)
	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

// Start implements core.Interface
func (s *Server) Start(ctx context.Context) error {
	if s.dashboard == nil {
		return fmt.Errorf("dashboard not provided")
	}

	s.startUpdates(ctx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("server starting", zap.String("url", fmt.Sprintf("http://localhost:%d", s.config.Server.Port)))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Error("server error", zap.Error(err))
		}
	}()

	return nil
}

// startUpdates forwards every new snapshot to websocket clients.
func (s *Server) startUpdates(ctx context.Context) {
	s.updates = s.dashboard.SubscribeOnUpdate().Watch(ctx, func(snap *domain.Snapshot) {
		msg, err := encodeSnapshotMessage(snap, s.config.Scoring)
		if err != nil {
			zap.L().Error("failed to encode snapshot message", zap.Error(err))
			return
		}
		s.hub.broadcast(msg)
	})
}

func (s *Server) latencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}
		s.metricsWriter.RecordLatency(endpoint, time.Since(start))
	})
}
