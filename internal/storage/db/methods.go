package db

import (
	"database/sql"
	"strconv"
)

// Key returns the URL identity of the user.
func (u User) Key() string { return u.Username }

// Key returns the URL identity of the ingredient.
func (i Ingredient) Key() string { return i.Name }

// Key returns the URL identity of the recipe.
func (r Recipe) Key() string { return strconv.FormatInt(r.ID, 10) }

// Key returns the URL identity of the review.
func (r Review) Key() string { return strconv.FormatInt(r.ID, 10) }

// NullInt64 wraps an optional id in a [sql.NullInt64].
func NullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// NullString wraps an optional string in a [sql.NullString].
func NullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

// RecipeIngredientLine is a quantity of a recipe joined with the name of its
// ingredient, which is null once the ingredient has been deleted.
type RecipeIngredientLine = ListRecipeIngredientLinesRow

// RecipeReviewLine is a review of a recipe joined with the username of its
// author.
type RecipeReviewLine = ListRecipeReviewLinesRow
