package repository

import (
	"context"
	"errors"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/store"
)

// PreferenceRepository stores one preferences document per user.
// Users who never saved get the defaults back, not an error.
type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (*domain.Preferences, error)
	Save(ctx context.Context, prefs *domain.Preferences) error
}

type preferenceRepository struct {
	store store.Store
}

func NewPreferenceRepository(s store.Store) PreferenceRepository {
	return &preferenceRepository{store: s}
}

func (r *preferenceRepository) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	doc, err := r.store.Get(ctx, CollectionPreferences, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, storeErr(err, "preferences")
	}

	prefs := &domain.Preferences{}
	if err := fromDoc(doc, prefs); err != nil {
		return nil, apperr.Internal(err)
	}
	return prefs, nil
}

func (r *preferenceRepository) Save(ctx context.Context, prefs *domain.Preferences) error {
	prefs.UpdatedAt = nowUTC()

	doc, err := toDoc(prefs)
	if err != nil {
		return apperr.Internal(err)
	}
	doc["id"] = prefs.UserID

	err = r.store.Update(ctx, CollectionPreferences, prefs.UserID, doc)
	if errors.Is(err, store.ErrNotFound) {
		_, err = r.store.Create(ctx, CollectionPreferences, doc)
	}
	if err != nil {
		return storeErr(err, "preferences")
	}
	return nil
}
