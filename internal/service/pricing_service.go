package service

import (
	"context"
	"time"

	"retailgenie/internal/domain"
	"retailgenie/internal/repository"
)

// ProductPricing is the pricing read model for one product.
type ProductPricing struct {
	ProductID          string    `json:"product_id"`
	BasePrice          float64   `json:"base_price"`
	CurrentPrice       float64   `json:"current_price"`
	DiscountPercentage float64   `json:"discount_percentage"`
	DiscountReason     string    `json:"discount_reason,omitempty"`
	PricingStrategy    string    `json:"pricing_strategy"`
	LastUpdated        time.Time `json:"last_updated"`
}

// DiscountInput is the apply-discount request shape.
type DiscountInput struct {
	ProductID  string     `json:"product_id" validate:"required"`
	Percentage float64    `json:"percentage" validate:"gte=0,lte=100"`
	Reason     string     `json:"reason"`
	StartAt    *time.Time `json:"start_at"`
	EndAt      *time.Time `json:"end_at"`
}

type PricingService interface {
	ProductPricing(ctx context.Context, productID string) (*ProductPricing, error)
	ApplyDiscount(ctx context.Context, in DiscountInput, createdBy string) (*domain.Discount, error)
	RemoveDiscount(ctx context.Context, id string) error
}

type pricingService struct {
	products  repository.ProductRepository
	discounts repository.DiscountRepository
}

func NewPricingService(products repository.ProductRepository, discounts repository.DiscountRepository) PricingService {
	return &pricingService{products: products, discounts: discounts}
}

// ProductPricing applies the best single active discount: highest
// percentage wins, ties broken by most recent creation. Discounts do not
// stack.
func (s *pricingService) ProductPricing(ctx context.Context, productID string) (*ProductPricing, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	pricing := &ProductPricing{
		ProductID:       product.ID,
		BasePrice:       product.Price,
		CurrentPrice:    product.Price,
		PricingStrategy: "standard",
		LastUpdated:     time.Now().UTC(),
	}

	active, err := s.discounts.ActiveFor(ctx, productID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if best := bestDiscount(active); best != nil {
		pricing.CurrentPrice = best.DiscountedPrice(product.Price)
		pricing.DiscountPercentage = best.Percentage
		pricing.DiscountReason = best.Reason
		pricing.PricingStrategy = "discounted"
	}
	return pricing, nil
}

func (s *pricingService) ApplyDiscount(ctx context.Context, in DiscountInput, createdBy string) (*domain.Discount, error) {
	if _, err := s.products.FindByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	d := &domain.Discount{
		ProductID:  in.ProductID,
		Percentage: in.Percentage,
		Reason:     in.Reason,
		EndAt:      in.EndAt,
		CreatedBy:  createdBy,
	}
	if in.StartAt != nil {
		d.StartAt = in.StartAt.UTC()
	}
	if err := s.discounts.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// RemoveDiscount deactivates a discount so it no longer affects the
// effective price. The record itself is kept.
func (s *pricingService) RemoveDiscount(ctx context.Context, id string) error {
	return s.discounts.Deactivate(ctx, id)
}

func bestDiscount(discounts []*domain.Discount) *domain.Discount {
	var best *domain.Discount
	for _, d := range discounts {
		if best == nil ||
			d.Percentage > best.Percentage ||
			(d.Percentage == best.Percentage && d.CreatedAt.After(best.CreatedAt)) {
			best = d
		}
	}
	return best
}
