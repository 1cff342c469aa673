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

// AddWishlistItemRequest represents the add-to-wishlist payload.
type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistHandler handles HTTP requests for the wishlist
type WishlistHandler struct {
	wishlists repository.WishlistRepository
	carts     repository.CartRepository
	products  repository.ProductRepository
	logger    *zap.Logger
}

func NewWishlistHandler(
	wishlists repository.WishlistRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	logger *zap.Logger,
) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists, carts: carts, products: products, logger: logger}
}

func (h *WishlistHandler) RegisterRoutes(r chi.Router, authGate, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Post("/add", h.AddItem)
			r.Delete("/items/{itemId}", h.RemoveItem)
			r.Post("/items/{itemId}/move-to-cart", h.MoveToCart)
		})
	})
}

func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		wl := sample.Wishlist("guest")
		middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"wishlist": wl,
			"mode":     sample.ModeFallback,
			"message":  "Sign in to keep a persistent wishlist",
		})
		return
	}

	wl, err := h.wishlists.Get(r.Context(), principal.UserID)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"wishlist": wl,
	})
}

func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistItemRequest
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
	wl, err := h.wishlists.AddItem(r.Context(), principal.UserID, domain.WishlistItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	})
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Debug("Wishlist item added",
		zap.String("user_id", principal.UserID),
		zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"wishlist": wl,
	})
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	wl, _, err := h.wishlists.RemoveItem(r.Context(), principal.UserID, chi.URLParam(r, "itemId"))
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"wishlist": wl,
	})
}

// MoveToCart removes the item from the wishlist and adds the referenced
// product to the cart in one request.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	wl, removed, err := h.wishlists.RemoveItem(r.Context(), principal.UserID, chi.URLParam(r, "itemId"))
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), principal.UserID, domain.CartItem{
		ProductID: removed.ProductID,
		Name:      removed.Name,
		Price:     removed.Price,
		Quantity:  1,
	})
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"wishlist": wl,
		"cart":     cart,
		"moved":    removed,
	})
}
