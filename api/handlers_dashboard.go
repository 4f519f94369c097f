package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/status-im/solscope/coingecko_markets"
	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/render"
	"github.com/status-im/solscope/scoring"
)

// snapshotResponse adds hot picks and per-coin score breakdowns to a snapshot.
type snapshotResponse struct {
	*domain.Snapshot
	HotPicks  []domain.RankedCoin           `json:"hot_picks"`
	Breakdown map[string]scoring.Components `json:"breakdown"`
}

func newSnapshotResponse(snap *domain.Snapshot, params config.ScoringConfig) snapshotResponse {
	breakdown := make(map[string]scoring.Components, len(snap.Results))
	for _, c := range snap.Results {
		breakdown[c.ID] = scoring.BreakdownOf(c, snap.Considered, params)
	}
	return snapshotResponse{
		Snapshot:  snap,
		HotPicks:  snap.HotPicks(),
		Breakdown: breakdown,
	}
}

type wsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func encodeSnapshotMessage(snap *domain.Snapshot, params config.ScoringConfig) ([]byte, error) {
	return json.Marshal(wsMessage{Type: "snapshot", Data: newSnapshotResponse(snap, params)})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := render.HTML(&buf, render.Page{
		Category: s.dashboard.Category(),
		Snapshot: s.dashboard.Current(),
		Scoring:  s.config.Scoring,
	})
	if err != nil {
		zap.L().Error("failed to render dashboard", zap.Error(err))
		http.Error(w, "Error rendering dashboard", http.StatusInternalServerError)
		return
	}
	s.sendBody(w, "text/html; charset=utf-8", &buf)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if _, err := s.dashboard.Refresh(r.Context()); err != nil {
		zap.L().Warn("refresh failed", zap.Error(err))
		if errors.Is(err, coingecko_markets.ErrAllCategoriesFailed) {
			s.sendJSONError(w, http.StatusInternalServerError, "All categories failed")
			return
		}
		s.sendJSONError(w, http.StatusInternalServerError, "Refresh failed")
		return
	}
	s.sendJSONResponse(w, map[string]string{"status": "success"})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	snap := s.dashboard.Current()
	if snap.Empty() {
		s.sendJSONError(w, http.StatusBadRequest, "No results to export")
		return
	}

	var buf bytes.Buffer
	if err := render.WriteCSV(&buf, snap); err != nil {
		zap.L().Error("failed to write csv", zap.Error(err))
		s.sendJSONError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", render.CSVFileName(snap.Category, s.now())))
	s.sendBody(w, "text/csv", &buf)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.dashboard.Current()
	if snap == nil {
		s.sendJSONError(w, http.StatusNotFound, "No snapshot yet")
		return
	}
	s.sendJSONResponse(w, newSnapshotResponse(snap, s.config.Scoring))
}
