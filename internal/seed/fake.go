package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/stolasapp/cookbook/internal/storage"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

// Fake recipe generation constants.
const (
	minIngredients = 1
	maxExtraIngr   = 4 // 1-4 ingredients per recipe
	maxReviews     = 3 // 0-2 reviews per recipe
	minSteps       = 2
	maxExtraSteps  = 4 // 2-5 steps per recipe
	minServing     = 1
	maxExtraServ   = 6 // 1-6 servings
	minRating      = 1
	ratingRange    = 5 // 1-5 stars
)

var metrics = []string{"g", "kg", "ml", "l", "tablespoon", "teaspoon", "cup", "pcs"}

// Seed returns the fake data seed from the COOKBOOK_SEED environment variable,
// or a random value if not set.
func Seed() uint64 {
	if env := os.Getenv("COOKBOOK_SEED"); env != "" {
		if seed, err := strconv.ParseUint(env, 10, 64); err == nil {
			return seed
		}
	}
	return rand.Uint64() //nolint:gosec // intentionally weak random for test data
}

// Fake inserts count generated recipes. Their ingredients are drawn from the
// catalogue, adding missing ones, and their reviews are authored by existing
// users when there are any.
func Fake(ctx context.Context, store storage.Store, seed uint64, count int) error {
	faker := gofakeit.New(seed)
	authors, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}

	for range count {
		recipe, err := store.CreateRecipe(ctx, db.Recipe{
			UserID:          pickUser(faker, authors),
			Title:           generateTitle(faker),
			Description:     valid(faker.Sentence(8 + faker.IntN(8))), //nolint:mnd // 8-15 words
			Steps:           generateSteps(faker),
			PreparationTime: fmt.Sprintf("%d mins", 5*(1+faker.IntN(12))), //nolint:mnd // 5-60 minutes
			CookingTime:     fmt.Sprintf("%d mins", 5*(1+faker.IntN(24))), //nolint:mnd // 5-120 minutes
			Serving:         int64(minServing + faker.IntN(maxExtraServ)),
		})
		if err != nil {
			return fmt.Errorf("failed to create fake recipe: %w", err)
		}
		recipeID := sql.NullInt64{Int64: recipe.ID, Valid: true}

		used := map[int64]bool{}
		for range minIngredients + faker.IntN(maxExtraIngr) {
			ingredient, err := ingredientFor(ctx, store, faker)
			if err != nil {
				return err
			}
			if used[ingredient.ID] {
				continue
			}
			used[ingredient.ID] = true
			if _, err = store.CreateQuantity(ctx, db.RecipeIngredientQty{
				RecipeID:     recipeID,
				IngredientID: sql.NullInt64{Int64: ingredient.ID, Valid: true},
				Qty:          float64(1 + faker.IntN(500)), //nolint:mnd // 1-500 units
				Metric:       metrics[faker.IntN(len(metrics))],
			}); err != nil {
				return fmt.Errorf("failed to add fake ingredient: %w", err)
			}
		}

		for range faker.IntN(maxReviews) {
			if _, err = store.CreateReview(ctx, db.Review{
				UserID:   pickUser(faker, authors),
				RecipeID: recipeID,
				Rating:   int64(minRating + faker.IntN(ratingRange)),
				Feedback: valid(faker.Sentence(5 + faker.IntN(10))), //nolint:mnd // 5-14 words
			}); err != nil {
				return fmt.Errorf("failed to add fake review: %w", err)
			}
		}
	}
	return nil
}

func pickUser(faker *gofakeit.Faker, users []db.User) sql.NullInt64 {
	if len(users) == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: users[faker.IntN(len(users))].ID, Valid: true}
}

func ingredientFor(ctx context.Context, store storage.Ingredients, faker *gofakeit.Faker) (db.Ingredient, error) {
	name := titleCase(faker.Vegetable())
	if faker.Bool() {
		name = titleCase(faker.Fruit())
	}
	ingredient, err := store.GetIngredientByName(ctx, name)
	if err == nil || !errors.Is(err, storage.ErrNotFound) {
		return ingredient, err
	}
	ingredient, err = store.CreateIngredient(ctx, db.Ingredient{
		Name:        name,
		Description: valid(faker.Sentence(6)), //nolint:mnd // short description
	})
	if err != nil {
		return ingredient, fmt.Errorf("failed to create fake ingredient %q: %w", name, err)
	}
	return ingredient, nil
}

func generateTitle(faker *gofakeit.Faker) string {
	patterns := []func(*gofakeit.Faker) string{
		func(f *gofakeit.Faker) string { return f.Breakfast() },
		func(f *gofakeit.Faker) string { return f.Lunch() },
		func(f *gofakeit.Faker) string { return f.Dinner() },
		func(f *gofakeit.Faker) string { return f.Dessert() },
		func(f *gofakeit.Faker) string {
			return fmt.Sprintf("%s with %s", titleCase(f.Vegetable()), strings.ToLower(f.Fruit()))
		},
		func(f *gofakeit.Faker) string { return fmt.Sprintf("The %s %s", f.Adjective(), f.Snack()) },
	}
	return titleCase(patterns[faker.IntN(len(patterns))](faker))
}

func generateSteps(faker *gofakeit.Faker) string {
	numSteps := minSteps + faker.IntN(maxExtraSteps)
	var builder strings.Builder
	builder.WriteByte('{')
	for i := range numSteps {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "%q: %q", fmt.Sprintf("step%d", i+1), faker.Sentence(6+faker.IntN(6))) //nolint:mnd // 6-11 words
	}
	builder.WriteByte('}')
	return builder.String()
}

func titleCase(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
