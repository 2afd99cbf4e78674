package handlers

import (
	"context"
	"net/http"
	"time"

	"social-backend/pkg/common"

	"go.uber.org/zap"
)

// ReadinessCheck reports whether a dependency is reachable
type ReadinessCheck func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	checks map[string]ReadinessCheck
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checks map[string]ReadinessCheck, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_ = common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failed := make(map[string]string)
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.String("dependency", name), zap.Error(err))
			failed[name] = "unavailable"
		}
	}

	if len(failed) > 0 {
		_ = common.RespondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":       "not ready",
			"dependencies": failed,
		})
		return
	}
	_ = common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
