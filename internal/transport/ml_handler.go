package transport

import (
	"net/http"

	"retailgenie/internal/middleware"
	"retailgenie/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OptimizePriceRequest names the product to optimize.
type OptimizePriceRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// MLHandler serves the ML read models
type MLHandler struct {
	ml     service.MLService
	logger *zap.Logger
}

func NewMLHandler(ml service.MLService, logger *zap.Logger) *MLHandler {
	return &MLHandler{ml: ml, logger: logger}
}

func (h *MLHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/ml", func(r chi.Router) {
		r.Get("/sentiment/analysis", h.SentimentAnalysis)
		r.Get("/inventory/forecast", h.InventoryForecast)
		r.Post("/pricing/optimize", h.OptimizePrice)
	})
}

func (h *MLHandler) SentimentAnalysis(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ml.SentimentSummary(r.Context())
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	payload := map[string]interface{}{
		"analysis":       summary.Analysis,
		"total_feedback": summary.TotalFeedback,
		"generated_at":   summary.GeneratedAt,
	}
	if summary.Mode != "" {
		payload["mode"] = summary.Mode
	}
	middleware.RespondWithJSON(w, http.StatusOK, payload)
}

func (h *MLHandler) InventoryForecast(w http.ResponseWriter, r *http.Request) {
	forecast, err := h.ml.InventoryForecast(r.Context())
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	payload := map[string]interface{}{
		"predictions":  forecast.Predictions,
		"generated_at": forecast.GeneratedAt,
	}
	if forecast.Mode != "" {
		payload["mode"] = forecast.Mode
	}
	middleware.RespondWithJSON(w, http.StatusOK, payload)
}

func (h *MLHandler) OptimizePrice(w http.ResponseWriter, r *http.Request) {
	var req OptimizePriceRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	suggestion, err := h.ml.OptimizePrice(r.Context(), req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Debug("Price optimization served",
		zap.String("product_id", req.ProductID),
		zap.String("mode", suggestion.Mode))
	payload := map[string]interface{}{
		"product_id":           suggestion.ProductID,
		"current_price":        suggestion.CurrentPrice,
		"optimal_price":        suggestion.OptimalPrice,
		"price_change_percent": suggestion.PriceChangePercent,
		"confidence":           suggestion.Confidence,
		"factors":              suggestion.Factors,
		"generated_at":         suggestion.GeneratedAt,
	}
	if suggestion.Mode != "" {
		payload["mode"] = suggestion.Mode
	}
	middleware.RespondWithJSON(w, http.StatusOK, payload)
}
