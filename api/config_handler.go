package api

import (
	"net/http"

	"github.com/seenimoa/finassist/internal/config"
)

// KeysResponse is returned by GET /config/keys.
type KeysResponse struct {
	Keys []config.KeyStatus `json:"keys"`
}

// handleGetConfigKeys reports which optional upstream keys are configured.
// Values are masked; the raw keys never leave the process.
func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, KeysResponse{Keys: config.CheckAPIKeys(s.cfg)})
}
