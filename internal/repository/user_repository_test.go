package repository

import (
	"context"
	"testing"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateNormalisesEmail(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	u := &domain.User{Email: "  Shop@Example.COM ", Name: "Ana", Role: domain.RoleRetailer, Active: true}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "shop@example.com", u.Email)

	found, err := repo.FindByEmail(ctx, "SHOP@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	first := &domain.User{Email: "shop@example.com", Name: "Ana", Active: true}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &domain.User{Email: "Shop@Example.com", Name: "Bob", Active: true})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUserFindByEmailMissing(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUserRecordLogin(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	u := &domain.User{Email: "shop@example.com", Name: "Ana", Active: true}
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.RecordLogin(ctx, u))

	fresh, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.LastLogin)
}

func TestUserUpdateProfile(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	u := &domain.User{Email: "shop@example.com", Name: "Ana", BusinessName: "Ana's", Active: true}
	require.NoError(t, repo.Create(ctx, u))

	name := "Ana Maria"
	updated, err := repo.UpdateProfile(ctx, u.ID, UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "Ana's", updated.BusinessName)

	empty := "  "
	_, err = repo.UpdateProfile(ctx, u.ID, UserPatch{Name: &empty})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
