package server

import (
	"encoding/json"
	"net/http"

	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/internal/core/observability/log"
)

func (s *Server) getOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := s.authorize(r); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("Failed to write response", log.Error(err))
	}
}

// handleState serves the current snapshot for clients that poll.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if !s.getOnly(w, r) {
		return
	}

	var snap model.Snapshot
	err := s.loop.Do(r.Context(), func() error {
		snap = s.view.Snapshot()
		return nil
	})
	if err != nil {
		s.logger.Warn("State request failed", log.Error(err))
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.writeJSON(w, snap)
}

// handleStats reports connected clients and event bus metrics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.getOnly(w, r) {
		return
	}
	s.writeJSON(w, s.GetStats())
}
