package http

import (
	"net/http"

	"github.com/notewell/notewell/internal/api/respond"
	"github.com/notewell/notewell/internal/store"
)

// HealthHandler reports liveness plus the cached store probe result.
type HealthHandler struct {
	checker *store.HealthChecker
}

func NewHealthHandler(checker *store.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	type status struct {
		Status string `json:"status"`
		Store  string `json:"store"`
	}

	if h.checker != nil && !h.checker.IsHealthy() {
		respond.WriteJSON(w, http.StatusServiceUnavailable, status{Status: "degraded", Store: "unhealthy"})
		return
	}
	respond.WriteJSON(w, http.StatusOK, status{Status: "ok", Store: "healthy"})
}
