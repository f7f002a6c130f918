package hypermedia

import (
	"github.com/stolasapp/cookbook/internal/mason"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

// QuantityFields is the payload of an ingredient quantity document.
func QuantityFields(qty db.RecipeIngredientQty) map[string]any {
	return map[string]any{
		"qty_id":        qty.ID,
		"recipe_id":     nullable(qty.RecipeID.Int64, qty.RecipeID.Valid),
		"ingredient_id": nullable(qty.IngredientID.Int64, qty.IngredientID.Valid),
		"qty":           qty.Qty,
		"metric":        qty.Metric,
	}
}

// Quantities are edited and removed through the collection of their recipe,
// keyed by ingredient.
func quantityMember(recipeID int64, qty db.RecipeIngredientQty, routes Routes) mason.Document {
	collection := routes.RecipeIngredients(recipeID)
	return item(QuantityFields(qty), routes.RecipeIngredient(recipeID, qty.ID), ProfileRecipeIngredient).
		WithControl(ControlEdit, editQuantity(collection)).
		WithControl(ControlDelete, removeQuantity(collection))
}

// QuantityItem is the document of a single ingredient quantity of a recipe.
func QuantityItem(recipeID int64, qty db.RecipeIngredientQty, routes Routes) mason.Document {
	return quantityMember(recipeID, qty, routes).
		WithNamespace(Namespace, NamespaceURI).
		WithControl(ControlCollection, mason.Titled(routes.RecipeIngredients(recipeID), "Ingredients of the recipe")).
		WithControl(ControlUp, mason.Titled(routes.Recipe(recipeID), "Recipe"))
}

// QuantityCollection is the document of the ingredient quantities of a
// recipe.
func QuantityCollection(recipeID int64, quantities []db.RecipeIngredientQty, routes Routes) mason.Document {
	href := routes.RecipeIngredients(recipeID)
	items := make([]mason.Document, 0, len(quantities))
	for _, qty := range quantities {
		items = append(items, quantityMember(recipeID, qty, routes))
	}
	return Collection(href, ControlAddIngredient, addQuantity(href), items).
		WithControl(ControlUp, mason.Titled(routes.Recipe(recipeID), "Recipe"))
}
