package repository

import (
	"context"
	"sort"
	"strings"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/store"

	"github.com/google/uuid"
)

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

var validSortFields = map[string]bool{
	"name":       true,
	"price":      true,
	"stock":      true,
	"created_at": true,
}

// ProductFilter narrows and orders a product listing. Zero value means
// insertion order, no filters, default page.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
	SortBy   string
	Order    SortOrder
	Limit    int
	Offset   int
}

// ProductPatch is the whitelisted subset of fields an update may change.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	SKU         *string  `json:"sku"`
}

// ProductRepository defines the interface for product data access.
// Soft-deleted products are excluded everywhere unless asked for.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product, createdBy string) error
	Update(ctx context.Context, id string, patch ProductPatch, updatedBy string) (*domain.Product, error)
	SoftDelete(ctx context.Context, id, deletedBy string) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, Page, error)
	Search(ctx context.Context, query, category string, limit int) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, map[string]int, error)
	SetStock(ctx context.Context, id string, stock int) (oldStock int, err error)
	Active(ctx context.Context) ([]*domain.Product, error)
}

type productRepository struct {
	store store.Store
}

func NewProductRepository(s store.Store) ProductRepository {
	return &productRepository{store: s}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product, createdBy string) error {
	if strings.TrimSpace(product.Name) == "" {
		return apperr.Validation("name is required")
	}
	if product.Price < 0 {
		return apperr.Validation("price must be >= 0")
	}
	if product.Stock < 0 {
		return apperr.Validation("stock must be >= 0")
	}

	product.ID = uuid.New().String()
	if product.SKU == "" {
		product.SKU = "SKU-" + strings.ToUpper(product.ID[:8])
	}
	product.Status = domain.ProductActive
	product.CreatedAt = nowUTC()
	product.UpdatedAt = product.CreatedAt
	product.CreatedBy = createdBy
	product.ComputeValue()

	doc, err := toDoc(product)
	if err != nil {
		return apperr.Internal(err)
	}
	if _, err := r.store.Create(ctx, CollectionProducts, doc); err != nil {
		return storeErr(err, "product")
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, id string, patch ProductPatch, updatedBy string) (*domain.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, apperr.Validation("price must be >= 0")
		}
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, apperr.Validation("stock must be >= 0")
		}
		product.Stock = *patch.Stock
	}
	if patch.SKU != nil {
		product.SKU = *patch.SKU
	}

	product.UpdatedAt = nowUTC()
	product.UpdatedBy = updatedBy
	product.ComputeValue()

	doc, err := toDoc(product)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := r.store.Update(ctx, CollectionProducts, id, doc); err != nil {
		return nil, storeErr(err, "product")
	}
	return product, nil
}

// SoftDelete tombstones a product; the document stays in the collection
// and drops out of default listings.
func (r *productRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}

	patch := store.Document{
		"status":     domain.ProductDeleted,
		"updated_at": nowUTC(),
		"updated_by": deletedBy,
	}
	if err := r.store.Update(ctx, CollectionProducts, id, patch); err != nil {
		return storeErr(err, "product")
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	doc, err := r.store.Get(ctx, CollectionProducts, id)
	if err != nil {
		return nil, storeErr(err, "product")
	}

	product := &domain.Product{}
	if err := fromDoc(doc, product); err != nil {
		return nil, apperr.Internal(err)
	}
	if product.Deleted() {
		return nil, apperr.NotFound("product not found")
	}
	product.ComputeValue()
	return product, nil
}

// Active returns every non-deleted product in insertion order.
func (r *productRepository) Active(ctx context.Context) ([]*domain.Product, error) {
	docs, err := r.store.List(ctx, CollectionProducts)
	if err != nil {
		return nil, storeErr(err, "product")
	}

	products := []*domain.Product{}
	for _, doc := range docs {
		p := &domain.Product{}
		if err := fromDoc(doc, p); err != nil {
			return nil, apperr.Internal(err)
		}
		if p.Deleted() {
			continue
		}
		p.ComputeValue()
		products = append(products, p)
	}
	return products, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, Page, error) {
	if filter.SortBy != "" && !validSortFields[filter.SortBy] {
		return nil, Page{}, apperr.Validation("unsupported sort key %q", filter.SortBy)
	}
	if filter.Order != "" && filter.Order != SortOrderAsc && filter.Order != SortOrderDesc {
		return nil, Page{}, apperr.Validation("order must be asc or desc")
	}

	products, err := r.Active(ctx)
	if err != nil {
		return nil, Page{}, err
	}

	filtered := products[:0:0]
	for _, p := range products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.InStock && p.Stock == 0 {
			continue
		}
		filtered = append(filtered, p)
	}

	if filter.SortBy != "" {
		sortProducts(filtered, filter.SortBy, filter.Order == SortOrderDesc)
	}

	limit, offset := ClampPage(filter.Limit, filter.Offset)
	page := Page{Total: len(filtered), Limit: limit, Offset: offset}

	if offset >= len(filtered) {
		return []*domain.Product{}, page, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	page.HasMore = end < len(filtered)
	return filtered[offset:end], page, nil
}

// Search matches the query case-insensitively as a substring of name,
// description, or category, in insertion order.
func (r *productRepository) Search(ctx context.Context, query, category string, limit int) ([]*domain.Product, error) {
	products, err := r.Active(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	matched := []*domain.Product{}
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		matched = append(matched, p)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}
	return matched, nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, map[string]int, error) {
	products, err := r.Active(ctx)
	if err != nil {
		return nil, nil, err
	}

	counts := map[string]int{}
	categories := []string{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if counts[p.Category] == 0 {
			categories = append(categories, p.Category)
		}
		counts[p.Category]++
	}
	sort.Strings(categories)
	return categories, counts, nil
}

// SetStock replaces a product's stock level, returning the previous value.
func (r *productRepository) SetStock(ctx context.Context, id string, stock int) (int, error) {
	if stock < 0 {
		return 0, apperr.Validation("stock must be >= 0")
	}

	product, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	old := product.Stock

	patch := store.Document{
		"stock":      stock,
		"value":      product.Price * float64(stock),
		"updated_at": nowUTC(),
	}
	if err := r.store.Update(ctx, CollectionProducts, id, patch); err != nil {
		return 0, storeErr(err, "product")
	}
	return old, nil
}

func sortProducts(products []*domain.Product, field string, desc bool) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if desc {
			a, b = b, a
		}
		switch field {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "price":
			return a.Price < b.Price
		case "stock":
			return a.Stock < b.Stock
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
