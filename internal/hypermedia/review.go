package hypermedia

import (
	"github.com/stolasapp/cookbook/internal/mason"
	"github.com/stolasapp/cookbook/internal/schema"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

// ReviewFields is the payload of a review document.
func ReviewFields(review db.Review) map[string]any {
	return map[string]any{
		"review_id": review.ID,
		"user_id":   nullable(review.UserID.Int64, review.UserID.Valid),
		"recipe_id": nullable(review.RecipeID.Int64, review.RecipeID.Valid),
		"rating":    review.Rating,
		"feedback":  nullable(review.Feedback.String, review.Feedback.Valid),
	}
}

func reviewMember(review db.Review, routes Routes) mason.Document {
	href := routes.Review(review.ID)
	doc := item(ReviewFields(review), href, ProfileReview).
		WithControl(ControlEdit, mason.Put(href, "Edit this review", schema.Review.Raw())).
		WithControl(ControlDelete, mason.Delete(href, "Delete this review"))
	if review.RecipeID.Valid {
		doc = doc.WithControl(ControlUp, mason.Titled(routes.Recipe(review.RecipeID.Int64), "Reviewed recipe"))
	}
	return doc
}

// ReviewItem is the document of a single review. A review whose recipe has
// been deleted has no collection.
func ReviewItem(review db.Review, routes Routes) mason.Document {
	doc := reviewMember(review, routes).WithNamespace(Namespace, NamespaceURI)
	if review.RecipeID.Valid {
		doc = doc.WithControl(ControlCollection,
			mason.Titled(routes.RecipeReviews(review.RecipeID.Int64), "Reviews of the recipe"))
	}
	return doc
}

// ReviewCollection is the document of the reviews of a recipe.
func ReviewCollection(recipeID int64, reviews []db.Review, routes Routes) mason.Document {
	href := routes.RecipeReviews(recipeID)
	items := make([]mason.Document, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, reviewMember(review, routes))
	}
	return Collection(href, ControlAddReview, mason.Post(href, "Add a review", schema.Review.Raw()), items).
		WithControl(ControlUp, mason.Titled(routes.Recipe(recipeID), "Recipe"))
}
