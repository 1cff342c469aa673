package repository

import (
	"context"
	"sort"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/store"

	"github.com/google/uuid"
)

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status     string
	CustomerID string
	Limit      int
}

// OrderRepository defines the interface for order data access. The order
// passed to Create must already carry server-resolved prices and totals.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order, createdBy string) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	ForCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	All(ctx context.Context) ([]*domain.Order, error)
}

type orderRepository struct {
	store store.Store
}

func NewOrderRepository(s store.Store) OrderRepository {
	return &orderRepository{store: s}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order, createdBy string) error {
	if order.CustomerID == "" {
		return apperr.Validation("customer_id is required")
	}
	if len(order.Items) == 0 {
		return apperr.Validation("order must have at least one item")
	}

	order.ID = uuid.New().String()
	order.Status = domain.OrderPending
	order.CreatedAt = nowUTC()
	order.UpdatedAt = order.CreatedAt
	order.CreatedBy = createdBy

	doc, err := toDoc(order)
	if err != nil {
		return apperr.Internal(err)
	}
	if _, err := r.store.Create(ctx, CollectionOrders, doc); err != nil {
		return storeErr(err, "order")
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	doc, err := r.store.Get(ctx, CollectionOrders, id)
	if err != nil {
		return nil, storeErr(err, "order")
	}

	order := &domain.Order{}
	if err := fromDoc(doc, order); err != nil {
		return nil, apperr.Internal(err)
	}
	return order, nil
}

func (r *orderRepository) All(ctx context.Context) ([]*domain.Order, error) {
	docs, err := r.store.List(ctx, CollectionOrders)
	if err != nil {
		return nil, storeErr(err, "order")
	}

	orders := []*domain.Order{}
	for _, doc := range docs {
		o := &domain.Order{}
		if err := fromDoc(doc, o); err != nil {
			return nil, apperr.Internal(err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// List returns matching orders newest-first.
func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error) {
	if filter.Status != "" && !domain.ValidOrderStatus(filter.Status) {
		return nil, apperr.Validation("unknown order status %q", filter.Status)
	}

	orders, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	filtered := orders[:0:0]
	for _, o := range orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.CustomerID != "" && o.CustomerID != filter.CustomerID {
			continue
		}
		filtered = append(filtered, o)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	limit := filter.Limit
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (r *orderRepository) ForCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return r.List(ctx, OrderFilter{CustomerID: customerID})
}

// UpdateStatus applies the order state machine: only pending orders move,
// and only to completed or cancelled.
func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, apperr.Validation("unknown order status %q", status)
	}

	order, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(order.Status, status) {
		return nil, apperr.Validation("cannot transition order from %s to %s", order.Status, status)
	}

	order.Status = status
	order.UpdatedAt = nowUTC()

	patch := store.Document{"status": status, "updated_at": order.UpdatedAt}
	if err := r.store.Update(ctx, CollectionOrders, id, patch); err != nil {
		return nil, storeErr(err, "order")
	}
	return order, nil
}
