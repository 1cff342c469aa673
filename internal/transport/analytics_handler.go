package transport

import (
	"net/http"

	"retailgenie/internal/middleware"
	"retailgenie/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AnalyticsHandler serves the analytics dashboard read model
type AnalyticsHandler struct {
	analytics service.AnalyticsService
	logger    *zap.Logger
}

func NewAnalyticsHandler(analytics service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, logger: logger}
}

func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/analytics", h.Dashboard)
	r.Get("/api/v1/analytics/dashboard", h.Dashboard)
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.analytics.Dashboard(r.Context(), r.URL.Query().Get("time_range"))
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	if dashboard.Mode != "" {
		h.logger.Debug("Analytics dashboard served from sample data")
	}
	payload := map[string]interface{}{
		"overview":              dashboard.Overview,
		"sales_trend":           dashboard.SalesTrend,
		"top_products":          dashboard.TopProducts,
		"category_distribution": dashboard.CategoryDistribution,
		"customer_segments":     dashboard.CustomerSegments,
		"time_range":            dashboard.TimeRange,
		"generated_at":          dashboard.GeneratedAt,
	}
	if dashboard.Mode != "" {
		payload["mode"] = dashboard.Mode
	}
	middleware.RespondWithJSON(w, http.StatusOK, payload)
}
