package transport

import (
	"net/http"

	"retailgenie/internal/apperr"
	"retailgenie/internal/middleware"
	"retailgenie/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BulkStockRequest carries a batch of stock adjustments.
type BulkStockRequest struct {
	Updates []service.StockUpdate `json:"updates" validate:"required,min=1,dive"`
}

// InventoryHandler handles HTTP requests for inventory projections
type InventoryHandler struct {
	inventory service.InventoryService
	logger    *zap.Logger
}

func NewInventoryHandler(inventory service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, logger: logger}
}

// RegisterRoutes declares the inventory route table. Bulk stock writes
// need an account role on top of authentication.
func (h *InventoryHandler) RegisterRoutes(r chi.Router, authGate, roleGate func(http.Handler) http.Handler) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/", h.Summary)
		r.Get("/low-stock", h.LowStock)

		r.Group(func(r chi.Router) {
			r.Use(authGate, roleGate)
			r.Post("/update", h.BulkUpdate)
		})
	})
}

func (h *InventoryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	threshold, err := intQuery(r, "threshold", 0)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	summary, err := h.inventory.Summary(r.Context(), threshold)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"inventory": summary,
	})
}

func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold, err := intQuery(r, "threshold", 0)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}
	if threshold < 0 {
		middleware.RespondWithError(w, apperr.Validation("threshold must be >= 0"))
		return
	}

	products, err := h.inventory.LowStock(r.Context(), threshold)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

func (h *InventoryHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkStockRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	results := h.inventory.BulkUpdate(r.Context(), req.Updates)

	succeeded := 0
	for _, res := range results {
		if res.Success {
			succeeded++
		}
	}
	h.logger.Info("Bulk stock update",
		zap.Int("requested", len(req.Updates)),
		zap.Int("succeeded", succeeded))

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}
