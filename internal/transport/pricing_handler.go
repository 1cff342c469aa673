package transport

import (
	"net/http"

	"retailgenie/internal/middleware"
	"retailgenie/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PricingHandler serves effective pricing and discount management
type PricingHandler struct {
	pricing service.PricingService
	logger  *zap.Logger
}

func NewPricingHandler(pricing service.PricingService, logger *zap.Logger) *PricingHandler {
	return &PricingHandler{pricing: pricing, logger: logger}
}

// RegisterRoutes declares the pricing route table. Reads are public;
// applying discounts needs an account role on top of authentication.
func (h *PricingHandler) RegisterRoutes(r chi.Router, authGate, roleGate func(http.Handler) http.Handler) {
	r.Route("/api/v1/pricing", func(r chi.Router) {
		r.Get("/products/{id}", h.ProductPricing)

		r.Group(func(r chi.Router) {
			r.Use(authGate, roleGate)
			r.Post("/discounts", h.ApplyDiscount)
			r.Delete("/discounts/{id}", h.RemoveDiscount)
		})
	})
}

func (h *PricingHandler) ProductPricing(w http.ResponseWriter, r *http.Request) {
	pricing, err := h.pricing.ProductPricing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"pricing": pricing,
	})
}

func (h *PricingHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	var req service.DiscountInput
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	principal, _ := middleware.GetPrincipal(r.Context())
	discount, err := h.pricing.ApplyDiscount(r.Context(), req, principal.UserID)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("Discount applied",
		zap.String("product_id", discount.ProductID),
		zap.Float64("percentage", discount.Percentage))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"discount": discount,
	})
}

func (h *PricingHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.pricing.RemoveDiscount(r.Context(), id); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("Discount deactivated", zap.String("discount_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "discount deactivated",
	})
}
