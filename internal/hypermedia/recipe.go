package hypermedia

import (
	"net/http"

	"github.com/stolasapp/cookbook/internal/mason"
	"github.com/stolasapp/cookbook/internal/schema"
	"github.com/stolasapp/cookbook/internal/storage"
)

// RecipeFields is the payload of a recipe document, embedding its ingredient
// quantities and reviews.
func RecipeFields(recipe storage.RecipeDetail) map[string]any {
	ingredients := make([]any, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		ingredients = append(ingredients, map[string]any{
			"ingredient_id": nullable(line.IngredientID.Int64, line.IngredientID.Valid),
			"ingredient":    nullable(line.Ingredient.String, line.Ingredient.Valid),
			"qty":           line.Qty,
			"metric":        line.Metric,
		})
	}
	reviews := make([]any, 0, len(recipe.Reviews))
	for _, line := range recipe.Reviews {
		reviews = append(reviews, map[string]any{
			"review_id": line.ReviewID,
			"rating":    line.Rating,
			"feedback":  nullable(line.Feedback.String, line.Feedback.Valid),
			"user":      nullable(line.Username.String, line.Username.Valid),
		})
	}
	return map[string]any{
		"recipe_id":        recipe.ID,
		"user_id":          nullable(recipe.UserID.Int64, recipe.UserID.Valid),
		"title":            recipe.Title,
		"description":      nullable(recipe.Description.String, recipe.Description.Valid),
		"steps":            recipe.Steps,
		"preparation_time": recipe.PreparationTime,
		"cooking_time":     recipe.CookingTime,
		"serving":          recipe.Serving,
		"recipeIngredient": ingredients,
		"reviews":          reviews,
	}
}

func recipeMember(recipe storage.RecipeDetail, routes Routes) mason.Document {
	href := routes.Recipe(recipe.ID)
	return item(RecipeFields(recipe), href, ProfileRecipe).
		WithControl(ControlEdit, mason.Put(href, "Edit this recipe", schema.Recipe.Raw())).
		WithControl(ControlDelete, mason.Delete(href, "Delete this recipe"))
}

// RecipeItem is the document of a single recipe, offering the controls of its
// review and ingredient quantity collections.
func RecipeItem(recipe storage.RecipeDetail, routes Routes) mason.Document {
	ingredients := routes.RecipeIngredients(recipe.ID)
	reviews := routes.RecipeReviews(recipe.ID)
	return recipeMember(recipe, routes).
		WithNamespace(Namespace, NamespaceURI).
		WithControl(ControlCollection, mason.Titled(routes.Recipes(), "All recipes")).
		WithControl(ControlReviews, mason.Titled(reviews, "Reviews of this recipe")).
		WithControl(ControlAddReview, mason.Post(reviews, "Add a review", schema.Review.Raw())).
		WithControl(ControlIngredients, mason.Titled(ingredients, "Ingredients of this recipe")).
		WithControl(ControlAddIngredient, addQuantity(ingredients)).
		WithControl(ControlEditIngredient, editQuantity(ingredients)).
		WithControl(ControlRemoveIngredient, removeQuantity(ingredients))
}

// RecipeCollection is the document of the recipe collection.
func RecipeCollection(recipes []storage.RecipeDetail, routes Routes) mason.Document {
	items := make([]mason.Document, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, recipeMember(recipe, routes))
	}
	return Collection(routes.Recipes(), ControlAddRecipe,
		mason.Post(routes.Recipes(), "Add a new recipe", schema.Recipe.Raw()),
		items)
}

func addQuantity(href string) mason.Control {
	return mason.Post(href, "Add an ingredient to this recipe", schema.QuantityCreate.Raw())
}

func editQuantity(href string) mason.Control {
	return mason.Put(href, "Edit an ingredient quantity of this recipe", schema.QuantityUpdate.Raw())
}

func removeQuantity(href string) mason.Control {
	return mason.Control{
		Href:     href,
		Method:   http.MethodDelete,
		Encoding: mason.EncodingJSON,
		Title:    "Remove an ingredient from this recipe",
		Schema:   schema.QuantityKey.Raw(),
	}
}
