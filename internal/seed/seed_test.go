package seed

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/cookbook/internal/config"
	"github.com/stolasapp/cookbook/internal/storage"
)

func newTestDB(t *testing.T) *storage.DB {
	t.Helper()
	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := storage.NewDB(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoad(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)
	require.NoError(t, Load(t.Context(), store))

	users, err := store.ListUsers(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user1", users[0].Username)
	assert.Equal(t, "user2@test.com", users[1].Email)

	ingredients, err := store.ListIngredients(t.Context())
	require.NoError(t, err)
	assert.Len(t, ingredients, 4)

	recipes, err := store.ListRecipes(t.Context())
	require.NoError(t, err)
	require.Len(t, recipes, 4)

	quantities := 0
	for _, recipe := range recipes {
		quantities += len(recipe.Ingredients)
		require.Len(t, recipe.Reviews, 1)
	}
	assert.Equal(t, 7, quantities)

	second := recipes[1]
	assert.Equal(t, "Recipe 2", second.Title)
	assert.Equal(t, users[1].ID, second.UserID.Int64)
	assert.Equal(t, "15 mins", second.PreparationTime)
	require.Len(t, second.Ingredients, 3)
	assert.Equal(t, "tablespoon", second.Ingredients[1].Metric)
	assert.Equal(t, "Ingredient 3", second.Ingredients[1].Ingredient.String)
	assert.Equal(t, int64(4), second.Reviews[0].Rating)
	assert.Equal(t, "user2", second.Reviews[0].Username.String)

	require.ErrorIs(t, Load(t.Context(), store), storage.ErrAlreadyExists, "fixture is not idempotent")
}

func TestFake(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)
	require.NoError(t, Load(t.Context(), store))
	require.NoError(t, Fake(t.Context(), store, 42, 10))

	recipes, err := store.ListRecipes(t.Context())
	require.NoError(t, err)
	require.Len(t, recipes, 14)
	for _, recipe := range recipes[4:] {
		assert.NotEmpty(t, recipe.Title)
		assert.Positive(t, recipe.Serving)
		assert.NotEmpty(t, recipe.Ingredients)
		assert.True(t, recipe.UserID.Valid)
		for _, review := range recipe.Reviews {
			assert.GreaterOrEqual(t, review.Rating, int64(1))
			assert.LessOrEqual(t, review.Rating, int64(5))
		}
	}
}

func TestFake_NoUsers(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)
	require.NoError(t, Fake(t.Context(), store, 7, 3))

	recipes, err := store.ListRecipes(t.Context())
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	for _, recipe := range recipes {
		assert.False(t, recipe.UserID.Valid)
	}
}

func TestSeed(t *testing.T) {
	t.Setenv("COOKBOOK_SEED", "1234")
	assert.Equal(t, uint64(1234), Seed())
}
