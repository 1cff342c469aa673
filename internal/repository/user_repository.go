package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/store"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access. Emails are
// unique case-insensitively; the stored email is normalised to lower case.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	RecordLogin(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
}

// UserPatch is the whitelisted set of profile fields a user may edit.
type UserPatch struct {
	Name         *string `json:"name"`
	BusinessName *string `json:"business_name"`
}

type userRepository struct {
	store store.Store
}

func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

// Create writes a new user after a best-effort duplicate check. Two
// concurrent registrations may both pass the pre-check; the later
// duplicate is reported as a conflict by the next read that observes it.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	existing, err := r.FindByEmail(ctx, user.Email)
	if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}
	if existing != nil && existing.Active {
		return apperr.Conflict("user with email %s already exists", user.Email)
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = nowUTC()

	doc, err := toDoc(user)
	if err != nil {
		return apperr.Internal(err)
	}
	if _, err := r.store.Create(ctx, CollectionUsers, doc); err != nil {
		return storeErr(err, "user")
	}
	return nil
}

// FindByEmail looks a user up case-insensitively. When a race produced
// duplicates, the earliest document wins and the rest surface as conflict
// on registration attempts only.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	docs, err := r.store.Query(ctx, CollectionUsers, "email", email)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	if len(docs) == 0 {
		return nil, apperr.NotFound("user with email %s not found", email)
	}

	user := &domain.User{}
	if err := fromDoc(docs[0], user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, CollectionUsers, id)
	if err != nil {
		return nil, storeErr(err, "user")
	}

	user := &domain.User{}
	if err := fromDoc(doc, user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (r *userRepository) RecordLogin(ctx context.Context, user *domain.User) error {
	now := nowUTC()
	user.LastLogin = &now

	patch := store.Document{"last_login": now}
	if err := r.store.Update(ctx, CollectionUsers, user.ID, patch); err != nil {
		return storeErr(err, "user")
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, patch UserPatch) (*domain.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		user.Name = *patch.Name
	}
	if patch.BusinessName != nil {
		user.BusinessName = *patch.BusinessName
	}

	doc, err := toDoc(user)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := r.store.Update(ctx, CollectionUsers, id, doc); err != nil {
		return nil, storeErr(err, "user")
	}
	return user, nil
}

// storeErr translates adapter failures into typed application errors.
func storeErr(err error, entity string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound("%s not found", entity)
	case errors.Is(err, store.ErrConflict):
		return apperr.Conflict("%s already exists", entity)
	case errors.Is(err, store.ErrUnavailable):
		return apperr.Unavailable(err)
	default:
		return apperr.Internal(fmt.Errorf("%s store operation failed: %w", entity, err))
	}
}
