package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/storage"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.sendJSONError(w, http.StatusServiceUnavailable, "History is disabled")
		return
	}
	limit, ok := parseLimit(r)
	if !ok {
		s.sendJSONError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	snaps, err := s.history.List(r.Context(), limit)
	if err != nil {
		zap.L().Error("failed to list snapshots", zap.Error(err))
		s.sendJSONError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	if snaps == nil {
		snaps = []*domain.Snapshot{}
	}
	s.sendJSONResponse(w, snaps)
}

func (s *Server) handleHistoryByID(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.sendJSONError(w, http.StatusServiceUnavailable, "History is disabled")
		return
	}

	snap, err := s.history.GetByID(r.Context(), mux.Vars(r)["id"])
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.sendJSONError(w, http.StatusNotFound, "Snapshot not found")
	case err != nil:
		zap.L().Error("failed to load snapshot", zap.Error(err))
		s.sendJSONError(w, http.StatusInternalServerError, "Failed to load snapshot")
	default:
		s.sendJSONResponse(w, newSnapshotResponse(snap, s.config.Scoring))
	}
}

func (s *Server) handleCoinScores(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.sendJSONError(w, http.StatusServiceUnavailable, "History is disabled")
		return
	}
	limit, ok := parseLimit(r)
	if !ok {
		s.sendJSONError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	points, err := s.history.CoinScores(r.Context(), mux.Vars(r)["id"], limit)
	if err != nil {
		zap.L().Error("failed to load coin scores", zap.Error(err))
		s.sendJSONError(w, http.StatusInternalServerError, "Failed to load scores")
		return
	}
	if points == nil {
		points = []domain.ScorePoint{}
	}
	s.sendJSONResponse(w, points)
}
