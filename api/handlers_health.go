package api

import (
	"net/http"
)

// handleHealth responds with 200 OK and the readiness of every registered service
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{}
	if s.health != nil {
		for name, healthy := range s.health.Health() {
			if healthy {
				services[name] = "up"
			} else {
				services[name] = "unknown"
			}
		}
	}

	s.sendJSONResponse(w, map[string]interface{}{
		"status":   "ok",
		"services": services,
	})
}
