package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/status-im/solscope/solana"
)

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	if s.wallet == nil {
		s.sendJSONError(w, http.StatusServiceUnavailable, "Wallet lookups are disabled")
		return
	}

	address := mux.Vars(r)["address"]
	summary, err := s.wallet.Lookup(r.Context(), address)
	switch {
	case errors.Is(err, solana.ErrInvalidAddress):
		s.sendJSONError(w, http.StatusBadRequest, "Invalid Solana address")
	case err != nil:
		zap.L().Warn("wallet lookup failed", zap.String("address", address), zap.Error(err))
		s.sendJSONError(w, http.StatusBadGateway, "Solana RPC request failed")
	default:
		s.sendJSONResponse(w, summary)
	}
}
