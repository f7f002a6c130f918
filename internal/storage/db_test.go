package storage

import (
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/cookbook/internal/config"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := NewDB(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func validID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

func TestDB_Users(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)

	user, err := store.CreateUser(t.Context(), db.User{Username: "user1", Email: "user1@test.com", Password: "user1"})
	require.NoError(t, err)
	assert.Positive(t, user.ID)

	actual, err := store.GetUserByUsername(t.Context(), "user1")
	require.NoError(t, err)
	assert.Equal(t, user, actual)

	t.Run("unique username", func(t *testing.T) {
		_, err := store.CreateUser(t.Context(), db.User{Username: "user1", Email: "other@test.com", Password: "x"})
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("unique email", func(t *testing.T) {
		_, err := store.CreateUser(t.Context(), db.User{Username: "other", Email: "user1@test.com", Password: "x"})
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("update", func(t *testing.T) {
		user.Email = "changed@test.com"
		require.NoError(t, store.UpdateUser(t.Context(), user))
		actual, err := store.GetUserByUsername(t.Context(), "user1")
		require.NoError(t, err)
		assert.Equal(t, "changed@test.com", actual.Email)

		require.ErrorIs(t, store.UpdateUser(t.Context(), db.User{ID: 999, Username: "x", Email: "x"}), ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteUser(t.Context(), user.ID))
		require.ErrorIs(t, store.DeleteUser(t.Context(), user.ID), ErrNotFound)
		_, err := store.GetUserByUsername(t.Context(), "user1")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDB_Ingredients(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)

	salt, err := store.CreateIngredient(t.Context(), db.Ingredient{Name: "Sea salt"})
	require.NoError(t, err)
	_, err = store.CreateIngredient(t.Context(), db.Ingredient{Name: "Sea salt"})
	require.ErrorIs(t, err, ErrAlreadyExists)
	_, err = store.CreateIngredient(t.Context(), db.Ingredient{Name: "sea salt"})
	require.NoError(t, err, "names are case sensitive")

	actual, err := store.GetIngredientByName(t.Context(), "Sea salt")
	require.NoError(t, err)
	assert.Equal(t, salt, actual)
	assert.False(t, actual.Description.Valid)

	salt.Description = sql.NullString{String: "coarse", Valid: true}
	require.NoError(t, store.UpdateIngredient(t.Context(), salt))
	list, err := store.ListIngredients(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, salt, list[0])
}

func TestDB_RecipeDetail(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)
	ctx := t.Context()

	user, err := store.CreateUser(ctx, db.User{Username: "cook", Email: "cook@test.com", Password: "pw"})
	require.NoError(t, err)
	flour, err := store.CreateIngredient(ctx, db.Ingredient{Name: "Flour"})
	require.NoError(t, err)
	recipe, err := store.CreateRecipe(ctx, db.Recipe{
		UserID:          validID(user.ID),
		Title:           "Bread",
		Steps:           "bake",
		PreparationTime: "10 mins",
		CookingTime:     "40 mins",
		Serving:         4,
	})
	require.NoError(t, err)
	_, err = store.CreateQuantity(ctx, db.RecipeIngredientQty{
		RecipeID:     validID(recipe.ID),
		IngredientID: validID(flour.ID),
		Qty:          500,
		Metric:       "g",
	})
	require.NoError(t, err)
	review, err := store.CreateReview(ctx, db.Review{
		UserID:   validID(user.ID),
		RecipeID: validID(recipe.ID),
		Rating:   5,
	})
	require.NoError(t, err)

	detail, err := store.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe, detail.Recipe)
	assert.Equal(t, []db.RecipeIngredientLine{{
		IngredientID: validID(flour.ID),
		Ingredient:   sql.NullString{String: "Flour", Valid: true},
		Qty:          500,
		Metric:       "g",
	}}, detail.Ingredients)
	assert.Equal(t, []db.RecipeReviewLine{{
		ReviewID: review.ID,
		Rating:   5,
		Username: sql.NullString{String: "cook", Valid: true},
	}}, detail.Reviews)

	t.Run("update keeps owner", func(t *testing.T) {
		changed := recipe
		changed.Title = "Sourdough"
		changed.UserID = sql.NullInt64{}
		require.NoError(t, store.UpdateRecipe(ctx, changed))
		actual, err := store.GetRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sourdough", actual.Title)
		assert.Equal(t, validID(user.ID), actual.UserID)
	})

	t.Run("quantity by ingredient", func(t *testing.T) {
		qty, err := store.GetQuantity(ctx, recipe.ID, flour.ID)
		require.NoError(t, err)
		qty.Qty = 2.5
		qty.Metric = "cups"
		require.NoError(t, store.UpdateQuantity(ctx, qty))
		list, err := store.ListQuantities(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, []db.RecipeIngredientQty{qty}, list)

		_, err = store.GetQuantity(ctx, recipe.ID, flour.ID+100)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("quantity by id", func(t *testing.T) {
		list, err := store.ListQuantities(ctx, recipe.ID)
		require.NoError(t, err)
		require.NotEmpty(t, list)
		qty, err := store.GetQuantityByID(ctx, recipe.ID, list[0].ID)
		require.NoError(t, err)
		assert.Equal(t, list[0], qty)

		_, err = store.GetQuantityByID(ctx, recipe.ID+100, list[0].ID)
		require.ErrorIs(t, err, ErrNotFound, "scoped to the recipe")
	})
}

func TestDB_InvalidReference(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)

	_, err := store.CreateRecipe(t.Context(), db.Recipe{
		UserID:          validID(999),
		Title:           "Orphan",
		Steps:           "none",
		PreparationTime: "1 min",
		CookingTime:     "1 min",
		Serving:         1,
	})
	require.ErrorIs(t, err, ErrInvalidReference)
	assert.Contains(t, err.Error(), "FOREIGN KEY")

	_, err = store.CreateReview(t.Context(), db.Review{RecipeID: validID(999), Rating: 1})
	require.ErrorIs(t, err, ErrInvalidReference)
}

func TestDB_SetNull(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)
	ctx := t.Context()

	user, err := store.CreateUser(ctx, db.User{Username: "u", Email: "u@test.com", Password: "p"})
	require.NoError(t, err)
	ingredient, err := store.CreateIngredient(ctx, db.Ingredient{Name: "Egg"})
	require.NoError(t, err)
	recipe, err := store.CreateRecipe(ctx, db.Recipe{
		UserID:          validID(user.ID),
		Title:           "Omelette",
		Steps:           "whisk",
		PreparationTime: "5 mins",
		CookingTime:     "5 mins",
		Serving:         1,
	})
	require.NoError(t, err)
	qty, err := store.CreateQuantity(ctx, db.RecipeIngredientQty{
		RecipeID:     validID(recipe.ID),
		IngredientID: validID(ingredient.ID),
		Qty:          3,
		Metric:       "pcs",
	})
	require.NoError(t, err)
	review, err := store.CreateReview(ctx, db.Review{
		UserID:   validID(user.ID),
		RecipeID: validID(recipe.ID),
		Rating:   4,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteUser(ctx, user.ID))
	detail, err := store.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.False(t, detail.UserID.Valid)
	require.Len(t, detail.Reviews, 1)
	assert.False(t, detail.Reviews[0].Username.Valid)
	actualReview, err := store.GetReview(ctx, review.ID)
	require.NoError(t, err)
	assert.False(t, actualReview.UserID.Valid)

	require.NoError(t, store.DeleteIngredient(ctx, ingredient.ID))
	detail, err = store.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, detail.Ingredients, 1)
	assert.False(t, detail.Ingredients[0].IngredientID.Valid)
	assert.False(t, detail.Ingredients[0].Ingredient.Valid)

	require.NoError(t, store.DeleteRecipe(ctx, recipe.ID))
	actualReview, err = store.GetReview(ctx, review.ID)
	require.NoError(t, err)
	assert.False(t, actualReview.RecipeID.Valid)
	assert.Equal(t, int64(4), actualReview.Rating)
	list, err := store.ListQuantities(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, store.DeleteQuantity(ctx, qty.ID), "orphaned quantity is kept")
}

func TestDB_AdminKey(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)

	_, err := store.GetAdminKey(t.Context())
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.ReplaceAdminKey(t.Context(), []byte("first")))
	require.NoError(t, store.ReplaceAdminKey(t.Context(), []byte("second")))
	key, err := store.GetAdminKey(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), key.Key)
	assert.True(t, key.Admin)

	_, err = store.CreateUser(t.Context(), db.User{Username: "u", Email: "e", Password: "p"})
	require.NoError(t, err)
	require.NoError(t, store.ClearEntities(t.Context()))
	users, err := store.ListUsers(t.Context())
	require.NoError(t, err)
	assert.Empty(t, users)
	_, err = store.GetAdminKey(t.Context())
	require.NoError(t, err, "api keys survive clearing")
}

func TestDB_Internal(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)

	require.NoError(t, store.Drop(t.Context()))
	_, err := store.ListUsers(t.Context())
	require.ErrorIs(t, err, ErrInternal)
	require.ErrorContains(t, err, "no such table")

	_, err = store.GetUserByUsername(t.Context(), "user1")
	require.ErrorIs(t, err, ErrInternal, "a missing table is not a missing row")
}
