package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthHandler serves liveness and widget-diagnostic endpoints.
type HealthHandler struct {
	hasCompletionKey bool
}

// NewHealthHandler creates the health handler. hasCompletionKey reports
// whether a completion-provider API key is configured so the widget can warn
// about a misdeployed backend.
func NewHealthHandler(hasCompletionKey bool) *HealthHandler {
	return &HealthHandler{hasCompletionKey: hasCompletionKey}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ping handles GET /api/ping.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"has_key": h.hasCompletionKey,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
