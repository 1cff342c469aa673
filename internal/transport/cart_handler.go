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

// AddCartItemRequest represents the add-to-cart payload. Name and price
// are resolved from the catalogue, never trusted from the client.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// UpdateCartItemRequest changes the quantity of one cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// CartHandler handles HTTP requests for the shopping cart
type CartHandler struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartHandler(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, products: products, logger: logger}
}

// RegisterRoutes declares the cart route table. GET tolerates anonymous
// callers and answers with a sample cart; all mutations are gated.
func (h *CartHandler) RegisterRoutes(r chi.Router, authGate, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Post("/add", h.AddItem)
			r.Put("/items/{itemId}", h.UpdateItem)
			r.Delete("/items/{itemId}", h.RemoveItem)
			r.Delete("/", h.Clear)
		})
	})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		cart := sample.Cart("guest")
		middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"cart":    cart,
			"mode":    sample.ModeFallback,
			"message": "Sign in to keep a persistent cart",
		})
		return
	}

	cart, err := h.carts.Get(r.Context(), principal.UserID)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cart": cart,
	})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	product, err := h.products.FindByID(r.Context(), req.ProductID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			err = apperr.Validation("unknown product %s", req.ProductID)
		}
		middleware.RespondWithError(w, err)
		return
	}

	principal, _ := middleware.GetPrincipal(r.Context())
	cart, err := h.carts.AddItem(r.Context(), principal.UserID, domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  req.Quantity,
	})
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Debug("Cart item added",
		zap.String("user_id", principal.UserID),
		zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cart": cart,
	})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	principal, _ := middleware.GetPrincipal(r.Context())
	cart, err := h.carts.UpdateItem(r.Context(), principal.UserID, chi.URLParam(r, "itemId"), req.Quantity)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cart": cart,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	cart, err := h.carts.RemoveItem(r.Context(), principal.UserID, chi.URLParam(r, "itemId"))
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cart": cart,
	})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	if err := h.carts.Clear(r.Context(), principal.UserID); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart cleared",
	})
}
