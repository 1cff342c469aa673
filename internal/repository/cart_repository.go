package repository

import (
	"context"
	"errors"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/store"

	"github.com/google/uuid"
)

// CartRepository stores one cart document per user, keyed by user id.
// Every mutation is a single document write; totals are recomputed inside
// that write so concurrent requests never observe a half-updated cart.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, item domain.CartItem) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type cartRepository struct {
	store store.Store
}

func NewCartRepository(s store.Store) CartRepository {
	return &cartRepository{store: s}
}

// Get returns the user's cart, lazily creating an empty one when the
// user has never added anything. Missing carts are not an error.
func (r *cartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	doc, err := r.store.Get(ctx, CollectionCarts, userID)
	if errors.Is(err, store.ErrNotFound) {
		now := nowUTC()
		return &domain.Cart{
			UserID:    userID,
			Items:     []domain.CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, storeErr(err, "cart")
	}

	cart := &domain.Cart{}
	if err := fromDoc(doc, cart); err != nil {
		return nil, apperr.Internal(err)
	}
	return cart, nil
}

func (r *cartRepository) save(ctx context.Context, cart *domain.Cart) error {
	cart.Recompute()
	cart.UpdatedAt = nowUTC()

	doc, err := toDoc(cart)
	if err != nil {
		return apperr.Internal(err)
	}
	doc["id"] = cart.UserID // the user id is the document key

	err = r.store.Update(ctx, CollectionCarts, cart.UserID, doc)
	if errors.Is(err, store.ErrNotFound) {
		_, err = r.store.Create(ctx, CollectionCarts, doc)
	}
	if err != nil {
		return storeErr(err, "cart")
	}
	return nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID string, item domain.CartItem) (*domain.Cart, error) {
	if item.ProductID == "" {
		return nil, apperr.Validation("product_id is required")
	}
	if item.Quantity < 1 {
		return nil, apperr.Validation("quantity must be >= 1")
	}

	cart, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Same product merges quantities rather than duplicating the line.
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		item.ID = uuid.New().String()
		item.AddedAt = nowUTC()
		cart.Items = append(cart.Items, item)
	}

	if err := r.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, apperr.Validation("quantity must be >= 1")
	}

	cart, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.NotFound("cart item not found")
	}

	if err := r.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	cart, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0:0]
	found := false
	for _, it := range cart.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		items = append(items, it)
	}
	if !found {
		return nil, apperr.NotFound("cart item not found")
	}
	cart.Items = items

	if err := r.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	err := r.store.Delete(ctx, CollectionCarts, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil // nothing to clear
	}
	if err != nil {
		return storeErr(err, "cart")
	}
	return nil
}
