package handler

import (
	"encoding/json"
	"net/http"

	"github.com/joestump/gator-probe/internal/build"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	provider string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(provider string) *HealthHandler { return &HealthHandler{provider: provider} }

type healthBody struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Provider   string            `json:"provider,omitempty"`
	Components map[string]string `json:"components"`
}

// Show serves GET /health.
func (h *HealthHandler) Show(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthBody{
		Status:   "healthy",
		Version:  build.Version,
		Provider: h.provider,
		Components: map[string]string{
			"catalog":         "ok",
			"promptAssembler": "ok",
			"llmClient":       "ok",
		},
	})
}
