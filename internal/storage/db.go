package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/stolasapp/cookbook/internal/config"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

// DB is a [Store] backed by a SQLite database.
type DB struct {
	db      *sql.DB
	queries *db.Queries
	logger  *slog.Logger
}

// NewDB initializes a DB with the given config and logger, migrating the schema
// if necessary.
func NewDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, cfg.DBFilepath)
	if err != nil {
		return nil, err
	}
	return &DB{
		db:      handle,
		queries: db.New(handle),
		logger:  logger,
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// Drop satisfies the [Store] interface.
func (d *DB) Drop(ctx context.Context) error {
	return db.Drop(ctx, d.logger, d.db)
}

// ClearEntities satisfies the [Store] interface.
func (d *DB) ClearEntities(ctx context.Context) error {
	return d.inTx(ctx, func(q *db.Queries) error {
		for _, clearTable := range []func(context.Context) error{
			q.ClearReviews,
			q.ClearQuantities,
			q.ClearIngredients,
			q.ClearRecipes,
			q.ClearUsers,
		} {
			if err := clearTable(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListUsers satisfies the [Users] interface.
func (d *DB) ListUsers(ctx context.Context) ([]db.User, error) {
	users, err := d.queries.ListUsers(ctx)
	return users, mapError(err)
}

// GetUserByUsername satisfies the [Users] interface.
func (d *DB) GetUserByUsername(ctx context.Context, username string) (db.User, error) {
	user, err := d.queries.GetUserByUsername(ctx, username)
	return user, mapError(err)
}

// CreateUser satisfies the [Users] interface.
func (d *DB) CreateUser(ctx context.Context, user db.User) (db.User, error) {
	id, err := d.queries.CreateUser(ctx, db.CreateUserParams{
		Email:    user.Email,
		Username: user.Username,
		Password: user.Password,
	})
	user.ID = id
	return user, mapError(err)
}

// UpdateUser satisfies the [Users] interface.
func (d *DB) UpdateUser(ctx context.Context, user db.User) error {
	return affected(d.queries.UpdateUser(ctx, db.UpdateUserParams{
		Email:    user.Email,
		Username: user.Username,
		Password: user.Password,
		ID:       user.ID,
	}))
}

// DeleteUser satisfies the [Users] interface.
func (d *DB) DeleteUser(ctx context.Context, userID int64) error {
	return affected(d.queries.DeleteUser(ctx, userID))
}

// ListIngredients satisfies the [Ingredients] interface.
func (d *DB) ListIngredients(ctx context.Context) ([]db.Ingredient, error) {
	ingredients, err := d.queries.ListIngredients(ctx)
	return ingredients, mapError(err)
}

// GetIngredientByName satisfies the [Ingredients] interface.
func (d *DB) GetIngredientByName(ctx context.Context, name string) (db.Ingredient, error) {
	ingredient, err := d.queries.GetIngredientByName(ctx, name)
	return ingredient, mapError(err)
}

// CreateIngredient satisfies the [Ingredients] interface.
func (d *DB) CreateIngredient(ctx context.Context, ingredient db.Ingredient) (db.Ingredient, error) {
	id, err := d.queries.CreateIngredient(ctx, db.CreateIngredientParams{
		Name:        ingredient.Name,
		Description: ingredient.Description,
	})
	ingredient.ID = id
	return ingredient, mapError(err)
}

// UpdateIngredient satisfies the [Ingredients] interface.
func (d *DB) UpdateIngredient(ctx context.Context, ingredient db.Ingredient) error {
	return affected(d.queries.UpdateIngredient(ctx, db.UpdateIngredientParams{
		Name:        ingredient.Name,
		Description: ingredient.Description,
		ID:          ingredient.ID,
	}))
}

// DeleteIngredient satisfies the [Ingredients] interface.
func (d *DB) DeleteIngredient(ctx context.Context, ingredientID int64) error {
	return affected(d.queries.DeleteIngredient(ctx, ingredientID))
}

// ListRecipes satisfies the [Recipes] interface.
func (d *DB) ListRecipes(ctx context.Context) ([]RecipeDetail, error) {
	recipes, err := d.queries.ListRecipes(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	details := make([]RecipeDetail, 0, len(recipes))
	for _, recipe := range recipes {
		detail, err := d.recipeDetail(ctx, recipe)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// GetRecipe satisfies the [Recipes] interface.
func (d *DB) GetRecipe(ctx context.Context, recipeID int64) (RecipeDetail, error) {
	recipe, err := d.queries.GetRecipe(ctx, recipeID)
	if err != nil {
		return RecipeDetail{}, mapError(err)
	}
	return d.recipeDetail(ctx, recipe)
}

func (d *DB) recipeDetail(ctx context.Context, recipe db.Recipe) (detail RecipeDetail, err error) {
	detail.Recipe = recipe
	if detail.Ingredients, err = d.queries.ListRecipeIngredientLines(ctx, ref(recipe.ID)); err != nil {
		return detail, mapError(err)
	}
	if detail.Reviews, err = d.queries.ListRecipeReviewLines(ctx, ref(recipe.ID)); err != nil {
		return detail, mapError(err)
	}
	return detail, nil
}

// CreateRecipe satisfies the [Recipes] interface.
func (d *DB) CreateRecipe(ctx context.Context, recipe db.Recipe) (db.Recipe, error) {
	id, err := d.queries.CreateRecipe(ctx, db.CreateRecipeParams{
		UserID:          recipe.UserID,
		Title:           recipe.Title,
		Description:     recipe.Description,
		Steps:           recipe.Steps,
		PreparationTime: recipe.PreparationTime,
		CookingTime:     recipe.CookingTime,
		Serving:         recipe.Serving,
	})
	recipe.ID = id
	return recipe, mapError(err)
}

// UpdateRecipe satisfies the [Recipes] interface.
func (d *DB) UpdateRecipe(ctx context.Context, recipe db.Recipe) error {
	return affected(d.queries.UpdateRecipe(ctx, db.UpdateRecipeParams{
		Title:           recipe.Title,
		Description:     recipe.Description,
		Steps:           recipe.Steps,
		PreparationTime: recipe.PreparationTime,
		CookingTime:     recipe.CookingTime,
		Serving:         recipe.Serving,
		ID:              recipe.ID,
	}))
}

// DeleteRecipe satisfies the [Recipes] interface.
func (d *DB) DeleteRecipe(ctx context.Context, recipeID int64) error {
	return affected(d.queries.DeleteRecipe(ctx, recipeID))
}

// ListQuantities satisfies the [Quantities] interface.
func (d *DB) ListQuantities(ctx context.Context, recipeID int64) ([]db.RecipeIngredientQty, error) {
	quantities, err := d.queries.ListQuantities(ctx, ref(recipeID))
	return quantities, mapError(err)
}

// GetQuantity satisfies the [Quantities] interface.
func (d *DB) GetQuantity(ctx context.Context, recipeID, ingredientID int64) (db.RecipeIngredientQty, error) {
	qty, err := d.queries.GetQuantity(ctx, db.GetQuantityParams{
		RecipeID:     ref(recipeID),
		IngredientID: ref(ingredientID),
	})
	return qty, mapError(err)
}

// GetQuantityByID satisfies the [Quantities] interface.
func (d *DB) GetQuantityByID(ctx context.Context, recipeID, qtyID int64) (db.RecipeIngredientQty, error) {
	qty, err := d.queries.GetQuantityByID(ctx, db.GetQuantityByIDParams{
		RecipeID: ref(recipeID),
		ID:       qtyID,
	})
	return qty, mapError(err)
}

// CreateQuantity satisfies the [Quantities] interface.
func (d *DB) CreateQuantity(ctx context.Context, qty db.RecipeIngredientQty) (db.RecipeIngredientQty, error) {
	id, err := d.queries.CreateQuantity(ctx, db.CreateQuantityParams{
		RecipeID:     qty.RecipeID,
		IngredientID: qty.IngredientID,
		Qty:          qty.Qty,
		Metric:       qty.Metric,
	})
	qty.ID = id
	return qty, mapError(err)
}

// UpdateQuantity satisfies the [Quantities] interface.
func (d *DB) UpdateQuantity(ctx context.Context, qty db.RecipeIngredientQty) error {
	return affected(d.queries.UpdateQuantity(ctx, db.UpdateQuantityParams{
		Qty:    qty.Qty,
		Metric: qty.Metric,
		ID:     qty.ID,
	}))
}

// DeleteQuantity satisfies the [Quantities] interface.
func (d *DB) DeleteQuantity(ctx context.Context, qtyID int64) error {
	return affected(d.queries.DeleteQuantity(ctx, qtyID))
}

// ListReviews satisfies the [Reviews] interface.
func (d *DB) ListReviews(ctx context.Context, recipeID int64) ([]db.Review, error) {
	reviews, err := d.queries.ListReviews(ctx, ref(recipeID))
	return reviews, mapError(err)
}

// GetReview satisfies the [Reviews] interface.
func (d *DB) GetReview(ctx context.Context, reviewID int64) (db.Review, error) {
	review, err := d.queries.GetReview(ctx, reviewID)
	return review, mapError(err)
}

// CreateReview satisfies the [Reviews] interface.
func (d *DB) CreateReview(ctx context.Context, review db.Review) (db.Review, error) {
	id, err := d.queries.CreateReview(ctx, db.CreateReviewParams{
		UserID:   review.UserID,
		RecipeID: review.RecipeID,
		Rating:   review.Rating,
		Feedback: review.Feedback,
	})
	review.ID = id
	return review, mapError(err)
}

// UpdateReview satisfies the [Reviews] interface.
func (d *DB) UpdateReview(ctx context.Context, review db.Review) error {
	return affected(d.queries.UpdateReview(ctx, db.UpdateReviewParams{
		UserID:   review.UserID,
		Rating:   review.Rating,
		Feedback: review.Feedback,
		ID:       review.ID,
	}))
}

// DeleteReview satisfies the [Reviews] interface.
func (d *DB) DeleteReview(ctx context.Context, reviewID int64) error {
	return affected(d.queries.DeleteReview(ctx, reviewID))
}

// GetAdminKey satisfies the [APIKeys] interface.
func (d *DB) GetAdminKey(ctx context.Context) (db.APIKey, error) {
	key, err := d.queries.GetAdminKey(ctx)
	return key, mapError(err)
}

// ReplaceAdminKey satisfies the [APIKeys] interface.
func (d *DB) ReplaceAdminKey(ctx context.Context, hash []byte) error {
	return d.inTx(ctx, func(q *db.Queries) error {
		if _, err := q.DeleteAdminKeys(ctx); err != nil {
			return err
		}
		_, err := q.CreateAPIKey(ctx, db.CreateAPIKeyParams{Key: hash, Admin: true})
		return err
	})
}

func (d *DB) inTx(ctx context.Context, fn func(q *db.Queries) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	if err = fn(d.queries.WithTx(tx)); err != nil {
		return errors.Join(mapError(err), tx.Rollback())
	}
	return mapError(tx.Commit())
}

// affected converts a rows-affected result into an error, reporting
// [ErrNotFound] when the statement matched nothing.
func affected(n int64, err error) error {
	switch {
	case err != nil:
		return mapError(err)
	case n == 0:
		return ErrNotFound
	default:
		return nil
	}
}

// mapError translates driver errors into [Error] values. Constraint
// violations keep the driver's message so callers can surface it.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

// ref wraps an id for comparison against a nullable foreign key column.
func ref(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

var _ Store = (*DB)(nil)
