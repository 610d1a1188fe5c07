// internal/handlers/dashboard.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	redis_a "github.com/Ritesh-Bote/inventory-app-backend/internal/adapters/redis_adapter"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/ports"
)

// dashboardCacheTTL bounds how stale the cached summary may get.
const dashboardCacheTTL = 5 * time.Minute

// DashboardHandler serves aggregated inventory statistics.
type DashboardHandler struct {
	service ports.InventoryService
	cache   ports.CacheRepository // nil when caching is disabled
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service ports.InventoryService, cache ports.CacheRepository, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		cache:   cache,
		logger:  logger.With(slog.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache == nil {
		summary, err := h.service.Summary(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to load dashboard",
				slog.String("error", err.Error()))
			h.respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}
		h.respondJSON(w, http.StatusOK, summary)
		return
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "summary")
	var summary ports.InventorySummary

	err := h.cache.GetOrSet(ctx, cacheKey, &summary, func() (interface{}, error) {
		return h.service.Summary(ctx)
	}, dashboardCacheTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}

func (h *DashboardHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *DashboardHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
