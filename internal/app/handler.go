package app

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/cookbook/internal/cache"
	"github.com/stolasapp/cookbook/internal/hypermedia"
	"github.com/stolasapp/cookbook/internal/mason"
	"github.com/stolasapp/cookbook/internal/observability"
	"github.com/stolasapp/cookbook/internal/pagination"
	"github.com/stolasapp/cookbook/internal/schema"
	"github.com/stolasapp/cookbook/internal/storage"
)

// recipesCacheKey holds the encoded recipe collection.
const recipesCacheKey = "recipes_all"

// Collection query parameters.
const (
	paramFilter      = "filter"
	paramMaxPageSize = "max_page_size"
	paramPageToken   = "page_token"
)

type handler struct {
	logger    *slog.Logger
	store     storage.Store
	cache     cache.Cache
	cacheTTL  time.Duration
	paginator *pagination.Paginator
	metrics   *observability.Metrics
	routes    hypermedia.Routes
}

func (h *handler) register(api *echo.Group) {
	api.GET("/users/", h.listUsers).Name = routeUsers
	api.POST("/users/", h.createUser)
	api.GET("/users/:username/", h.getUser, h.loadUser).Name = routeUser
	api.PUT("/users/:username/", h.updateUser, h.loadUser)
	api.DELETE("/users/:username/", h.deleteUser, h.loadUser)

	api.GET("/ingredients/", h.listIngredients).Name = routeIngredients
	api.POST("/ingredients/", h.createIngredient)
	api.GET("/ingredients/:name/", h.getIngredient, h.loadIngredient).Name = routeIngredient
	api.PUT("/ingredients/:name/", h.updateIngredient, h.loadIngredient)
	api.DELETE("/ingredients/:name/", h.deleteIngredient, h.loadIngredient)

	api.GET("/recipes/", h.listRecipes).Name = routeRecipes
	api.POST("/recipes/", h.createRecipe)
	api.GET("/recipes/:recipe/", h.getRecipe, h.loadRecipe).Name = routeRecipe
	api.PUT("/recipes/:recipe/", h.updateRecipe, h.loadRecipe)
	api.DELETE("/recipes/:recipe/", h.deleteRecipe, h.loadRecipe)

	api.GET("/recipes/:recipe/ingredients/", h.listQuantities, h.loadRecipe).Name = routeRecipeIngredients
	api.POST("/recipes/:recipe/ingredients/", h.createQuantity, h.loadRecipe)
	api.PUT("/recipes/:recipe/ingredients/", h.updateQuantity, h.loadRecipe)
	api.DELETE("/recipes/:recipe/ingredients/", h.deleteQuantity, h.loadRecipe)
	api.GET("/recipes/:recipe/ingredients/:qty/", h.getQuantity, h.loadRecipe, h.loadQuantity).Name = routeRecipeIngredient

	api.GET("/recipes/:recipe/reviews/", h.listReviews, h.loadRecipe).Name = routeRecipeReviews
	api.POST("/recipes/:recipe/reviews/", h.createReview, h.loadRecipe)

	api.GET("/reviews/:review/", h.getReview, h.loadReview).Name = routeReview
	api.PUT("/reviews/:review/", h.updateReview, h.loadReview)
	api.DELETE("/reviews/:review/", h.deleteReview, h.loadReview)
}

// invalidate drops the cached recipe collection. Every write may change the
// embedded ingredient, review, or author data of a recipe.
func (h *handler) invalidate() {
	h.cache.Invalidate(recipesCacheKey)
}

func writeDocument(c echo.Context, status int, doc mason.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return c.Blob(status, mason.MediaType, data)
}

func created(c echo.Context, location string) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.NoContent(http.StatusCreated)
}

// readJSON checks that the request carries a JSON body matching s and decodes
// it into dst.
func readJSON(c echo.Context, s *schema.Schema, dst any) error {
	req := c.Request()
	mediaType, _, err := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))
	if err != nil || mediaType != echo.MIMEApplicationJSON {
		return errUnsupportedMediaType()
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if err = s.Decode(body, dst); err != nil {
		return errInvalidDocument(err, validationMessage(err))
	}
	return nil
}

// validationMessage drops the schema location header line of a validation
// error, keeping the messages naming the offending instance locations.
func validationMessage(err error) string {
	var (
		syntaxErr *schema.SyntaxError
		rangeErr  *schema.RangeError
	)
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Error()
	}
	if errors.As(err, &rangeErr) {
		return rangeErr.Error()
	}
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	if len(lines) > 1 {
		lines = lines[1:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(strings.TrimSpace(line), "- ")
	}
	return strings.Join(lines, "; ")
}

// pathParam returns the unescaped path segment bound to name.
func pathParam(c echo.Context, name string) (string, error) {
	val := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return val, nil
	}
	return url.PathUnescape(val)
}

func listRequest(c echo.Context) (pagination.Request, error) {
	req := pagination.Request{
		Filter:    c.QueryParam(paramFilter),
		PageToken: c.QueryParam(paramPageToken),
	}
	if size := c.QueryParam(paramMaxPageSize); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 0 {
			return req, errInvalidQuery(errors.New("max_page_size must be a non-negative integer"))
		}
		req.MaxPageSize = n
	}
	return req, nil
}

// nextLink adds the next control to doc when the listing continues past it.
func nextLink(doc mason.Document, self string, req pagination.Request, next string) mason.Document {
	if next == "" {
		return doc
	}
	query := url.Values{}
	if req.Filter != "" {
		query.Set(paramFilter, req.Filter)
	}
	query.Set(paramMaxPageSize, strconv.Itoa(req.MaxPageSize))
	query.Set(paramPageToken, next)
	return hypermedia.WithNext(doc, self+"?"+query.Encode())
}
