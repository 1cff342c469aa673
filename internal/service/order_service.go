package service

import (
	"context"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/repository"
)

// OrderItemInput is the client shape of an order line. Any price the
// client sends is discarded; the server resolves it from the product.
type OrderItemInput struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price"` // ignored
}

// OrderService builds orders with server-authoritative pricing.
type OrderService interface {
	CreateOrder(ctx context.Context, customerID string, items []OrderItemInput, createdBy string) (*domain.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository) OrderService {
	return &orderService{orders: orders, products: products}
}

// CreateOrder re-reads each referenced product, substitutes its current
// price, and derives subtotals and the total. Stock is not decremented
// here; downstream systems own that.
func (s *orderService) CreateOrder(ctx context.Context, customerID string, items []OrderItemInput, createdBy string) (*domain.Order, error) {
	if customerID == "" {
		return nil, apperr.Validation("customer_id is required")
	}
	if len(items) == 0 {
		return nil, apperr.Validation("order must have at least one item")
	}

	resolved := make([]domain.OrderItem, 0, len(items))
	total := 0.0
	for _, in := range items {
		if in.Quantity < 1 {
			return nil, apperr.Validation("quantity must be >= 1 for product %s", in.ProductID)
		}
		product, err := s.products.FindByID(ctx, in.ProductID)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				return nil, apperr.Validation("unknown product %s", in.ProductID)
			}
			return nil, err
		}

		subtotal := product.Price * float64(in.Quantity)
		resolved = append(resolved, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Price:     product.Price,
			Subtotal:  subtotal,
		})
		total += subtotal
	}

	order := &domain.Order{
		CustomerID: customerID,
		Items:      resolved,
		Total:      total,
	}
	if err := s.orders.Create(ctx, order, createdBy); err != nil {
		return nil, err
	}
	return order, nil
}
