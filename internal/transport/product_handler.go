package transport

import (
	"net/http"
	"strconv"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/middleware"
	"retailgenie/internal/repository"
	"retailgenie/internal/sample"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	SKU         string  `json:"sku"`
}

// ProductHandler handles HTTP requests for the product catalogue
type ProductHandler struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewProductHandler(products repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// RegisterRoutes declares the product route table. Reads are public,
// writes require an authenticated principal.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authGate func(http.Handler) http.Handler) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/categories", h.Categories)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilterFromQuery(r)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	products, page, err := h.products.List(r.Context(), filter)
	if err != nil {
		if apperr.IsKind(err, apperr.KindUnavailable) {
			h.logger.Warn("Product store unavailable, serving sample data", zap.Error(err))
			h.respondSample(w)
			return
		}
		middleware.RespondWithError(w, err)
		return
	}

	if page.Total == 0 {
		// An empty filtered result is an honest answer; samples only
		// stand in for an empty catalogue.
		active, err := h.products.Active(r.Context())
		if err == nil && len(active) == 0 {
			h.respondSample(w)
			return
		}
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
		"page":     page,
	})
}

func (h *ProductHandler) respondSample(w http.ResponseWriter) {
	products := sample.Products()
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
		"mode":     sample.ModeFallback,
		"message":  "Serving sample products",
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
	})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	principal, _ := middleware.GetPrincipal(r.Context())
	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		SKU:         req.SKU,
	}
	if err := h.products.Create(r.Context(), product, principal.UserID); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("created_by", principal.UserID))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"product": product,
	})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch repository.ProductPatch
	if err := middleware.DecodeAndValidate(r, &patch); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	principal, _ := middleware.GetPrincipal(r.Context())
	product, err := h.products.Update(r.Context(), chi.URLParam(r, "id"), patch, principal.UserID)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
	})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.products.SoftDelete(r.Context(), id, principal.UserID); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("Product deleted",
		zap.String("product_id", id),
		zap.String("deleted_by", principal.UserID))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product deleted",
	})
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		middleware.RespondWithError(w, apperr.Validation("query parameter q is required"))
		return
	}

	limit, err := intQuery(r, "limit", repository.DefaultLimit)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	products, err := h.products.Search(r.Context(), query, r.URL.Query().Get("category"), limit)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
		"query":    query,
	})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, counts, err := h.products.Categories(r.Context())
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"counts":     counts,
	})
}

func productFilterFromQuery(r *http.Request) (repository.ProductFilter, error) {
	q := r.URL.Query()
	filter := repository.ProductFilter{
		Category: q.Get("category"),
		SortBy:   q.Get("sort_by"),
		Order:    repository.SortOrder(q.Get("order")),
	}

	var err error
	if filter.Limit, err = intQuery(r, "limit", 0); err != nil {
		return filter, err
	}
	if filter.Offset, err = intQuery(r, "offset", 0); err != nil {
		return filter, err
	}
	if filter.MinPrice, err = floatQuery(r, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = floatQuery(r, "max_price"); err != nil {
		return filter, err
	}
	if v := q.Get("in_stock"); v != "" {
		filter.InStock, err = strconv.ParseBool(v)
		if err != nil {
			return filter, apperr.Validation("in_stock must be a boolean")
		}
	}
	return filter, nil
}

func intQuery(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperr.Validation("%s must be an integer", name)
	}
	return n, nil
}

func floatQuery(r *http.Request, name string) (*float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, apperr.Validation("%s must be a number", name)
	}
	return &f, nil
}
