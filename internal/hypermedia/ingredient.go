package hypermedia

import (
	"github.com/stolasapp/cookbook/internal/mason"
	"github.com/stolasapp/cookbook/internal/schema"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

// IngredientFields is the payload of an ingredient document.
func IngredientFields(ingredient db.Ingredient) map[string]any {
	return map[string]any{
		"ingredient_id": ingredient.ID,
		"name":          ingredient.Name,
		"description":   nullable(ingredient.Description.String, ingredient.Description.Valid),
	}
}

func ingredientMember(ingredient db.Ingredient, routes Routes) mason.Document {
	href := routes.Ingredient(ingredient.Key())
	return item(IngredientFields(ingredient), href, ProfileIngredient).
		WithControl(ControlEdit, mason.Put(href, "Edit this ingredient", schema.Ingredient.Raw())).
		WithControl(ControlDelete, mason.Delete(href, "Delete this ingredient"))
}

// IngredientItem is the document of a single ingredient.
func IngredientItem(ingredient db.Ingredient, routes Routes) mason.Document {
	return ingredientMember(ingredient, routes).
		WithNamespace(Namespace, NamespaceURI).
		WithControl(ControlCollection, mason.Titled(routes.Ingredients(), "All ingredients"))
}

// IngredientCollection is the document of the ingredient catalogue.
func IngredientCollection(ingredients []db.Ingredient, routes Routes) mason.Document {
	items := make([]mason.Document, 0, len(ingredients))
	for _, ingredient := range ingredients {
		items = append(items, ingredientMember(ingredient, routes))
	}
	return Collection(routes.Ingredients(), ControlAddIngredient,
		mason.Post(routes.Ingredients(), "Add a new ingredient", schema.Ingredient.Raw()),
		items)
}
