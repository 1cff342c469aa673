package transport

import (
	"net/http"
	"time"

	"retailgenie/internal/middleware"
	"retailgenie/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version is the API version reported by the system surface.
const Version = "1.0.0"

// SystemHandler serves the system and database admin endpoints.
type SystemHandler struct {
	system service.SystemService
	logger *zap.Logger
}

func NewSystemHandler(system service.SystemService, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{system: system, logger: logger}
}

// RegisterRoutes declares the system route table. Everything here is
// public.
func (h *SystemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/status", h.Status)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/routes", h.Routes)
		r.Get("/database/status", h.DatabaseStatus)
		r.Post("/database/init", h.DatabaseInit)
	})
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "RetailGenie Backend API",
		"version":   Version,
		"status":    "active",
		"endpoints": "/api/v1/routes",
	})
}

func (h *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.system.DatabaseStatus(r.Context())
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	db := "disconnected"
	if status.Connected {
		db = "connected"
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": Version,
		"features": map[string]interface{}{
			"database":             db,
			"auth_enabled":         true,
			"product_management":   true,
			"inventory_management": true,
			"analytics_enabled":    true,
			"ml_read_models":       true,
			"pricing_engine":       true,
			"feedback_system":      true,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *SystemHandler) Routes(w http.ResponseWriter, r *http.Request) {
	routes := routeDirectory()
	total := 0
	for _, group := range routes {
		total += len(group)
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"routes":          routes,
		"total_endpoints": total,
		"version":         Version,
	})
}

func (h *SystemHandler) DatabaseStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.system.DatabaseStatus(r.Context())
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"database_connected": status.Connected,
		"collections":        status.Collections,
		"total_documents":    status.TotalDocuments,
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *SystemHandler) DatabaseInit(w http.ResponseWriter, r *http.Request) {
	results, err := h.system.InitCollections(r.Context())
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"collections": results,
	})
}

type routeEntry struct {
	Endpoint    string `json:"endpoint"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

func routeDirectory() map[string][]routeEntry {
	return map[string][]routeEntry{
		"system": {
			{"/", "GET", "Root API information"},
			{"/status", "GET", "Simple status for deployment monitoring"},
			{"/api/v1/health", "GET", "Health check with feature status"},
			{"/api/v1/routes", "GET", "List all available routes"},
			{"/api/v1/database/status", "GET", "Database connection status"},
			{"/api/v1/database/init", "POST", "Initialize database collections"},
		},
		"authentication": {
			{"/api/v1/auth/register", "POST", "User registration"},
			{"/api/v1/auth/login", "POST", "User login"},
			{"/api/v1/auth/logout", "POST", "User logout"},
			{"/api/v1/auth/profile", "GET", "Get user profile (requires auth)"},
			{"/api/v1/auth/refresh", "POST", "Refresh bearer token"},
			{"/api/v1/auth/forgot-password", "POST", "Password reset request"},
		},
		"products": {
			{"/api/v1/products", "GET", "List products with filtering"},
			{"/api/v1/products", "POST", "Create product"},
			{"/api/v1/products/{id}", "GET", "Get product by id"},
			{"/api/v1/products/{id}", "PUT", "Update product"},
			{"/api/v1/products/{id}", "DELETE", "Soft-delete product"},
			{"/api/v1/products/search", "GET", "Product search"},
			{"/api/v1/products/categories", "GET", "Product categories"},
		},
		"inventory": {
			{"/api/v1/inventory", "GET", "Inventory summary"},
			{"/api/v1/inventory/low-stock", "GET", "Low stock products"},
			{"/api/v1/inventory/update", "POST", "Bulk stock update"},
		},
		"orders": {
			{"/api/v1/orders", "GET", "List orders"},
			{"/api/v1/orders", "POST", "Create order"},
			{"/api/v1/orders/{id}", "GET", "Get order by id"},
			{"/api/v1/orders/{id}/status", "PUT", "Update order status"},
			{"/api/v1/orders/{id}/cancel", "POST", "Cancel order"},
		},
		"customers": {
			{"/api/v1/customers", "GET", "List customers"},
			{"/api/v1/customers", "POST", "Create customer"},
			{"/api/v1/customers/{id}", "GET", "Get customer by id"},
			{"/api/v1/customers/{id}", "PUT", "Update customer"},
			{"/api/v1/customers/{id}", "DELETE", "Delete customer"},
		},
		"feedback": {
			{"/api/v1/feedback", "GET", "List feedback"},
			{"/api/v1/feedback", "POST", "Submit feedback"},
			{"/api/v1/feedback/sentiment", "GET", "Sentiment aggregate"},
		},
		"analytics": {
			{"/api/v1/analytics", "GET", "Dashboard analytics"},
			{"/api/v1/ml/sentiment/analysis", "GET", "Sentiment analysis read model"},
			{"/api/v1/ml/inventory/forecast", "GET", "Demand forecast read model"},
			{"/api/v1/ml/pricing/optimize", "POST", "Price optimization read model"},
		},
		"pricing": {
			{"/api/v1/pricing/products/{id}", "GET", "Product pricing with discounts"},
			{"/api/v1/pricing/discounts", "POST", "Apply discount"},
			{"/api/v1/pricing/discounts/{id}", "DELETE", "Deactivate discount"},
		},
		"shopping": {
			{"/api/v1/cart", "GET", "Get cart"},
			{"/api/v1/cart/add", "POST", "Add item to cart"},
			{"/api/v1/cart/items/{id}", "PUT", "Update cart item"},
			{"/api/v1/cart/items/{id}", "DELETE", "Remove cart item"},
			{"/api/v1/cart", "DELETE", "Clear cart"},
			{"/api/v1/wishlist", "GET", "Get wishlist"},
			{"/api/v1/wishlist/add", "POST", "Add wishlist item"},
			{"/api/v1/wishlist/items/{id}", "DELETE", "Remove wishlist item"},
			{"/api/v1/wishlist/items/{id}/move-to-cart", "POST", "Move item toward cart"},
		},
		"profile": {
			{"/api/v1/profile", "GET", "Get profile"},
			{"/api/v1/profile/preferences", "GET", "Get preferences"},
			{"/api/v1/profile/preferences", "PUT", "Update preferences"},
		},
	}
}
