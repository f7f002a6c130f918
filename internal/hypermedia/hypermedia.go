// Package hypermedia projects cookbook entities into Mason documents.
//
// Every builder is a pure function of its entity and a [Routes] table: it
// never mutates its input, and identical inputs yield identical documents.
package hypermedia

import (
	"github.com/stolasapp/cookbook/internal/mason"
)

// Link relation namespace of the cookbook controls.
const (
	Namespace    = "cookbook"
	NamespaceURI = "/cookbook/link-relations/"
)

// Profiles describing the semantics of each resource kind.
const (
	ProfileUser             = "/profiles/user/"
	ProfileRecipe           = "/profiles/recipe/"
	ProfileIngredient       = "/profiles/ingredient/"
	ProfileReview           = "/profiles/review/"
	ProfileRecipeIngredient = "/profiles/recipe-ingredient/"
)

// Control names.
const (
	ControlSelf             = "self"
	ControlProfile          = "profile"
	ControlCollection       = "collection"
	ControlUp               = "up"
	ControlNext             = "next"
	ControlEdit             = "edit"
	ControlDelete           = Namespace + ":delete"
	ControlAddUser          = Namespace + ":add-user"
	ControlAddRecipe        = Namespace + ":add-recipe"
	ControlAddReview        = Namespace + ":add-review"
	ControlAddIngredient    = Namespace + ":add-ingredient"
	ControlEditIngredient   = Namespace + ":edit-ingredient"
	ControlRemoveIngredient = Namespace + ":remove-ingredient"
	ControlReviews          = Namespace + ":reviews"
	ControlIngredients      = Namespace + ":ingredients"
)

// Routes generates the canonical hrefs of the cookbook resources. Natural key
// segments are escaped by the implementation.
type Routes interface {
	Users() string
	User(username string) string
	Ingredients() string
	Ingredient(name string) string
	Recipes() string
	Recipe(recipeID int64) string
	RecipeIngredients(recipeID int64) string
	RecipeIngredient(recipeID, qtyID int64) string
	RecipeReviews(recipeID int64) string
	Review(reviewID int64) string
}

// Collection returns the collection document at self holding items. It
// declares the cookbook namespace and offers add under addName.
func Collection(self, addName string, add mason.Control, items []mason.Document) mason.Document {
	if items == nil {
		items = []mason.Document{}
	}
	return mason.New(nil).
		WithNamespace(Namespace, NamespaceURI).
		WithControl(ControlSelf, mason.Link(self)).
		WithControl(addName, add).
		With("items", items)
}

// WithNext returns a copy of doc linking to the following page at href.
func WithNext(doc mason.Document, href string) mason.Document {
	return doc.WithControl(ControlNext, mason.Link(href))
}

func item(fields map[string]any, self, profile string) mason.Document {
	return mason.New(fields).
		WithControl(ControlSelf, mason.Link(self)).
		WithControl(ControlProfile, mason.Link(profile))
}

func nullable[T any](v T, valid bool) any {
	if !valid {
		return nil
	}
	return v
}
