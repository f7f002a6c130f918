// Package seed populates a store with test data.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stolasapp/cookbook/internal/storage"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

const steps = `{"step1": "step 1", "step2": "step 2"}`

type recipeFixture struct {
	owner       int // index into the users
	prep, cook  string
	serving     int64
	ingredients []quantityFixture
}

type quantityFixture struct {
	ingredient int // index into the ingredients
	qty        float64
	metric     string
}

var (
	users = []db.User{
		{Username: "user1", Email: "user1@test.com", Password: "user1"},
		{Username: "user2", Email: "user2@test.com", Password: "user2"},
	}

	recipes = []recipeFixture{
		{owner: 0, prep: "10 mins", cook: "20 mins", serving: 2, ingredients: []quantityFixture{
			{ingredient: 0, qty: 100, metric: "g"},
			{ingredient: 1, qty: 200, metric: "g"},
		}},
		{owner: 1, prep: "15 mins", cook: "25 mins", serving: 1, ingredients: []quantityFixture{
			{ingredient: 0, qty: 500, metric: "g"},
			{ingredient: 2, qty: 3, metric: "tablespoon"},
			{ingredient: 3, qty: 40, metric: "ml"},
		}},
		{owner: 0, prep: "20 mins", cook: "30 mins", serving: 1, ingredients: []quantityFixture{
			{ingredient: 1, qty: 500, metric: "g"},
		}},
		{owner: 1, prep: "25 mins", cook: "35 mins", serving: 3, ingredients: []quantityFixture{
			{ingredient: 3, qty: 150, metric: "ml"},
		}},
	}
)

const numIngredients = 4

// Load inserts the fixed test data set: two users, four ingredients, four
// recipes with seven ingredient quantities between them, and one review per
// recipe.
func Load(ctx context.Context, store storage.Store) error {
	userIDs := make([]int64, 0, len(users))
	for _, user := range users {
		created, err := store.CreateUser(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to create user %q: %w", user.Username, err)
		}
		userIDs = append(userIDs, created.ID)
	}

	ingredientIDs := make([]int64, 0, numIngredients)
	for i := range numIngredients {
		created, err := store.CreateIngredient(ctx, db.Ingredient{
			Name:        fmt.Sprintf("Ingredient %d", i+1),
			Description: valid(fmt.Sprintf("Description %d", i+1)),
		})
		if err != nil {
			return fmt.Errorf("failed to create ingredient %d: %w", i+1, err)
		}
		ingredientIDs = append(ingredientIDs, created.ID)
	}

	for i, fixture := range recipes {
		n := i + 1
		ownerID := sql.NullInt64{Int64: userIDs[fixture.owner], Valid: true}
		recipe, err := store.CreateRecipe(ctx, db.Recipe{
			UserID:          ownerID,
			Title:           fmt.Sprintf("Recipe %d", n),
			Description:     valid(fmt.Sprintf("Description %d", n)),
			Steps:           steps,
			PreparationTime: fixture.prep,
			CookingTime:     fixture.cook,
			Serving:         fixture.serving,
		})
		if err != nil {
			return fmt.Errorf("failed to create recipe %d: %w", n, err)
		}
		recipeID := sql.NullInt64{Int64: recipe.ID, Valid: true}

		for _, qty := range fixture.ingredients {
			if _, err = store.CreateQuantity(ctx, db.RecipeIngredientQty{
				RecipeID:     recipeID,
				IngredientID: sql.NullInt64{Int64: ingredientIDs[qty.ingredient], Valid: true},
				Qty:          qty.qty,
				Metric:       qty.metric,
			}); err != nil {
				return fmt.Errorf("failed to add ingredient to recipe %d: %w", n, err)
			}
		}

		if _, err = store.CreateReview(ctx, db.Review{
			UserID:   ownerID,
			RecipeID: recipeID,
			Rating:   int64(len(recipes) + 1 - n),
			Feedback: valid(fmt.Sprintf("Feedback %d", n)),
		}); err != nil {
			return fmt.Errorf("failed to review recipe %d: %w", n, err)
		}
	}
	return nil
}

func valid(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
