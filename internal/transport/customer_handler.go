package transport

import (
	"net/http"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/middleware"
	"retailgenie/internal/repository"
	"retailgenie/internal/sample"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCustomerRequest represents the customer creation payload
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerHandler handles HTTP requests for customer records
type CustomerHandler struct {
	customers repository.CustomerRepository
	logger    *zap.Logger
}

func NewCustomerHandler(customers repository.CustomerRepository, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, logger: logger}
}

func (h *CustomerHandler) RegisterRoutes(r chi.Router, authGate func(http.Handler) http.Handler) {
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		if apperr.IsKind(err, apperr.KindUnavailable) {
			h.logger.Warn("Customer store unavailable, serving sample data", zap.Error(err))
			h.respondSample(w)
			return
		}
		middleware.RespondWithError(w, err)
		return
	}

	if len(customers) == 0 {
		h.respondSample(w)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"customers": customers,
		"count":     len(customers),
	})
}

func (h *CustomerHandler) respondSample(w http.ResponseWriter) {
	customers := sample.Customers()
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"customers": customers,
		"count":     len(customers),
		"mode":      sample.ModeFallback,
		"message":   "Serving sample customers",
	})
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"customer": customer,
	})
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	customer := &domain.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := h.customers.Create(r.Context(), customer); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("Customer created", zap.String("customer_id", customer.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"customer": customer,
	})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch repository.CustomerPatch
	if err := middleware.DecodeAndValidate(r, &patch); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	customer, err := h.customers.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"customer": customer,
	})
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.customers.Delete(r.Context(), id); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("Customer deleted", zap.String("customer_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Customer deleted",
	})
}
