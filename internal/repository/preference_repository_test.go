package repository

import (
	"context"
	"testing"

	"retailgenie/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesDefaultBeforeFirstSave(t *testing.T) {
	repo := NewPreferenceRepository(newTestStore(t))

	prefs, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", prefs.UserID)
	assert.Equal(t, "light", prefs.Theme)
	assert.Equal(t, "USD", prefs.Currency)
	assert.True(t, prefs.Notifications)
}

func TestPreferencesSaveThenGet(t *testing.T) {
	repo := NewPreferenceRepository(newTestStore(t))
	ctx := context.Background()

	prefs := domain.DefaultPreferences("u1")
	prefs.Theme = "dark"
	prefs.Newsletter = true
	require.NoError(t, repo.Save(ctx, prefs))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
	assert.True(t, got.Newsletter)
	assert.False(t, got.UpdatedAt.IsZero())

	// Saving again overwrites in place
	got.Theme = "light"
	require.NoError(t, repo.Save(ctx, got))
	again, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "light", again.Theme)
}
