package transport

import (
	"net/http"

	"retailgenie/internal/domain"
	"retailgenie/internal/middleware"
	"retailgenie/internal/repository"
	"retailgenie/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateOrderRequest represents the order creation payload
type CreateOrderRequest struct {
	CustomerID string                   `json:"customer_id"`
	Items      []service.OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest carries a status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orders   repository.OrderRepository
	orderSvc service.OrderService
	logger   *zap.Logger
}

func NewOrderHandler(orders repository.OrderRepository, orderSvc service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, orderSvc: orderSvc, logger: logger}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router, authGate func(http.Handler) http.Handler) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Post("/", h.Create)
			r.Put("/{id}/status", h.UpdateStatus)
			r.Post("/{id}/cancel", h.Cancel)
		})
	})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	q := r.URL.Query()
	orders, err := h.orders.List(r.Context(), repository.OrderFilter{
		Status:     q.Get("status"),
		CustomerID: q.Get("customer_id"),
		Limit:      limit,
	})
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"order": order,
	})
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	principal, _ := middleware.GetPrincipal(r.Context())
	order, err := h.orderSvc.CreateOrder(r.Context(), req.CustomerID, req.Items, principal.UserID)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"order": order,
	})
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"order": order,
	})
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), domain.OrderCancelled)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"order": order,
	})
}
