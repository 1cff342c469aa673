package repository

import (
	"context"
	"strings"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/store"

	"github.com/google/uuid"
)

// CustomerPatch is the whitelisted subset of customer fields an update
// may change.
type CustomerPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, id string, patch CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type customerRepository struct {
	store store.Store
}

func NewCustomerRepository(s store.Store) CustomerRepository {
	return &customerRepository{store: s}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if strings.TrimSpace(customer.Name) == "" {
		return apperr.Validation("name is required")
	}
	if !strings.Contains(customer.Email, "@") {
		return apperr.Validation("email is invalid")
	}
	if customer.LoyaltyPoints < 0 || customer.TotalOrders < 0 {
		return apperr.Validation("counters must be >= 0")
	}

	customer.ID = uuid.New().String()
	customer.CreatedAt = nowUTC()
	customer.UpdatedAt = customer.CreatedAt

	doc, err := toDoc(customer)
	if err != nil {
		return apperr.Internal(err)
	}
	if _, err := r.store.Create(ctx, CollectionCustomers, doc); err != nil {
		return storeErr(err, "customer")
	}
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	doc, err := r.store.Get(ctx, CollectionCustomers, id)
	if err != nil {
		return nil, storeErr(err, "customer")
	}

	customer := &domain.Customer{}
	if err := fromDoc(doc, customer); err != nil {
		return nil, apperr.Internal(err)
	}
	return customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	docs, err := r.store.List(ctx, CollectionCustomers)
	if err != nil {
		return nil, storeErr(err, "customer")
	}

	customers := []*domain.Customer{}
	for _, doc := range docs {
		c := &domain.Customer{}
		if err := fromDoc(doc, c); err != nil {
			return nil, apperr.Internal(err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, id string, patch CustomerPatch) (*domain.Customer, error) {
	customer, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		customer.Name = *patch.Name
	}
	if patch.Email != nil {
		if !strings.Contains(*patch.Email, "@") {
			return nil, apperr.Validation("email is invalid")
		}
		customer.Email = *patch.Email
	}
	if patch.Phone != nil {
		customer.Phone = *patch.Phone
	}
	if patch.Address != nil {
		customer.Address = *patch.Address
	}
	customer.UpdatedAt = nowUTC()

	doc, err := toDoc(customer)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := r.store.Update(ctx, CollectionCustomers, id, doc); err != nil {
		return nil, storeErr(err, "customer")
	}
	return customer, nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, CollectionCustomers, id); err != nil {
		return storeErr(err, "customer")
	}
	return nil
}
