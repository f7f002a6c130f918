package hypermedia

import (
	"github.com/stolasapp/cookbook/internal/mason"
	"github.com/stolasapp/cookbook/internal/schema"
	"github.com/stolasapp/cookbook/internal/storage/db"
)

// UserFields is the payload of a user document.
func UserFields(user db.User) map[string]any {
	return map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"password": user.Password,
	}
}

func userMember(user db.User, routes Routes) mason.Document {
	href := routes.User(user.Key())
	return item(UserFields(user), href, ProfileUser).
		WithControl(ControlEdit, mason.Put(href, "Edit this user", schema.User.Raw())).
		WithControl(ControlDelete, mason.Delete(href, "Delete this user"))
}

// UserItem is the document of a single user.
func UserItem(user db.User, routes Routes) mason.Document {
	return userMember(user, routes).
		WithNamespace(Namespace, NamespaceURI).
		WithControl(ControlCollection, mason.Titled(routes.Users(), "All users"))
}

// UserCollection is the document of the user collection.
func UserCollection(users []db.User, routes Routes) mason.Document {
	items := make([]mason.Document, 0, len(users))
	for _, user := range users {
		items = append(items, userMember(user, routes))
	}
	return Collection(routes.Users(), ControlAddUser,
		mason.Post(routes.Users(), "Add a new user", schema.User.Raw()),
		items)
}
