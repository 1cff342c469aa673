package repository

import (
	"context"
	"errors"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/store"

	"github.com/google/uuid"
)

// WishlistRepository stores one wishlist document per user, keyed by user
// id. Adding a product already on the list is a conflict.
type WishlistRepository interface {
	Get(ctx context.Context, userID string) (*domain.Wishlist, error)
	AddItem(ctx context.Context, userID string, item domain.WishlistItem) (*domain.Wishlist, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*domain.Wishlist, *domain.WishlistItem, error)
}

type wishlistRepository struct {
	store store.Store
}

func NewWishlistRepository(s store.Store) WishlistRepository {
	return &wishlistRepository{store: s}
}

// Get returns the user's wishlist, lazily creating an empty one when
// the user has never added anything.
func (r *wishlistRepository) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	doc, err := r.store.Get(ctx, CollectionWishlists, userID)
	if errors.Is(err, store.ErrNotFound) {
		now := nowUTC()
		return &domain.Wishlist{
			UserID:    userID,
			Items:     []domain.WishlistItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, storeErr(err, "wishlist")
	}

	wl := &domain.Wishlist{}
	if err := fromDoc(doc, wl); err != nil {
		return nil, apperr.Internal(err)
	}
	return wl, nil
}

func (r *wishlistRepository) save(ctx context.Context, wl *domain.Wishlist) error {
	wl.Recompute()
	wl.UpdatedAt = nowUTC()

	doc, err := toDoc(wl)
	if err != nil {
		return apperr.Internal(err)
	}
	doc["id"] = wl.UserID // the user id is the document key

	err = r.store.Update(ctx, CollectionWishlists, wl.UserID, doc)
	if errors.Is(err, store.ErrNotFound) {
		_, err = r.store.Create(ctx, CollectionWishlists, doc)
	}
	if err != nil {
		return storeErr(err, "wishlist")
	}
	return nil
}

func (r *wishlistRepository) AddItem(ctx context.Context, userID string, item domain.WishlistItem) (*domain.Wishlist, error) {
	if item.ProductID == "" {
		return nil, apperr.Validation("product_id is required")
	}

	wl, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, existing := range wl.Items {
		if existing.ProductID == item.ProductID {
			return nil, apperr.Conflict("product %s is already in the wishlist", item.ProductID)
		}
	}

	item.ID = uuid.New().String()
	item.AddedAt = nowUTC()
	wl.Items = append(wl.Items, item)

	if err := r.save(ctx, wl); err != nil {
		return nil, err
	}
	return wl, nil
}

// RemoveItem drops the item from the wishlist and returns its payload,
// so move-to-cart can hand it back to the caller.
func (r *wishlistRepository) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Wishlist, *domain.WishlistItem, error) {
	wl, err := r.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var removed *domain.WishlistItem
	items := wl.Items[:0:0]
	for _, it := range wl.Items {
		if it.ID == itemID {
			copied := it
			removed = &copied
			continue
		}
		items = append(items, it)
	}
	if removed == nil {
		return nil, nil, apperr.NotFound("wishlist item not found")
	}
	wl.Items = items

	if err := r.save(ctx, wl); err != nil {
		return nil, nil, err
	}
	return wl, removed, nil
}
