package repository

import (
	"context"
	"time"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/store"

	"github.com/google/uuid"
)

// DiscountRepository stores discounts. Discounts are immutable once
// created; deactivation is the only mutation.
type DiscountRepository interface {
	Create(ctx context.Context, d *domain.Discount) error
	ActiveFor(ctx context.Context, productID string, now time.Time) ([]*domain.Discount, error)
	Deactivate(ctx context.Context, id string) error
}

type discountRepository struct {
	store store.Store
}

func NewDiscountRepository(s store.Store) DiscountRepository {
	return &discountRepository{store: s}
}

func (r *discountRepository) Create(ctx context.Context, d *domain.Discount) error {
	if d.ProductID == "" {
		return apperr.Validation("product_id is required")
	}
	if d.Percentage < 0 || d.Percentage > 100 {
		return apperr.Validation("percentage must be between 0 and 100")
	}

	d.ID = uuid.New().String()
	d.Active = true
	d.CreatedAt = nowUTC()
	if d.StartAt.IsZero() {
		d.StartAt = d.CreatedAt
	}

	doc, err := toDoc(d)
	if err != nil {
		return apperr.Internal(err)
	}
	if _, err := r.store.Create(ctx, CollectionDiscounts, doc); err != nil {
		return storeErr(err, "discount")
	}
	return nil
}

func (r *discountRepository) ActiveFor(ctx context.Context, productID string, now time.Time) ([]*domain.Discount, error) {
	docs, err := r.store.Query(ctx, CollectionDiscounts, "product_id", productID)
	if err != nil {
		return nil, storeErr(err, "discount")
	}

	active := []*domain.Discount{}
	for _, doc := range docs {
		d := &domain.Discount{}
		if err := fromDoc(doc, d); err != nil {
			return nil, apperr.Internal(err)
		}
		if d.InEffect(now) {
			active = append(active, d)
		}
	}
	return active, nil
}

func (r *discountRepository) Deactivate(ctx context.Context, id string) error {
	patch := store.Document{"active": false}
	if err := r.store.Update(ctx, CollectionDiscounts, id, patch); err != nil {
		return storeErr(err, "discount")
	}
	return nil
}
