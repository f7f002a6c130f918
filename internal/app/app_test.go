package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stolasapp/cookbook/internal/cache"
	"github.com/stolasapp/cookbook/internal/config"
	"github.com/stolasapp/cookbook/internal/mason"
	"github.com/stolasapp/cookbook/internal/observability"
	"github.com/stolasapp/cookbook/internal/sec"
	"github.com/stolasapp/cookbook/internal/seed"
	"github.com/stolasapp/cookbook/internal/storage"
)

const testKey = "verysafetestkey"

type testServer struct {
	e       *echo.Echo
	store   *storage.DB
	metrics *observability.Metrics
}

type serverOption func(t *testing.T, store *storage.DB)

func withoutAdminKey() serverOption {
	return func(*testing.T, *storage.DB) {}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := storage.NewDB(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, seed.Load(t.Context(), store))

	if len(opts) == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(testKey), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, store.ReplaceAdminKey(t.Context(), hash))
	}
	for _, opt := range opts {
		opt(t, store)
	}

	metrics := observability.NewMetrics()
	e, err := New(cfg, slog.Default(), store, cache.NewMemory(), metrics)
	require.NoError(t, err)
	return &testServer{e: e, store: store, metrics: metrics}
}

type requestOption func(req *http.Request)

func withKey(key string) requestOption {
	return func(req *http.Request) {
		if key == "" {
			req.Header.Del(sec.HeaderAPIKey)
			return
		}
		req.Header.Set(sec.HeaderAPIKey, key)
	}
}

func withContentType(mediaType string) requestOption {
	return func(req *http.Request) {
		req.Header.Set(echo.HeaderContentType, mediaType)
	}
}

// do sends an authenticated request. A non-empty body is declared as JSON.
func (s *testServer) do(t *testing.T, method, target, body string, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(sec.HeaderAPIKey, testKey)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func items(t *testing.T, rec *httptest.ResponseRecorder) []any {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list, ok := decode(t, rec)["items"].([]any)
	require.True(t, ok)
	return list
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, title, description string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	assert.Equal(t, mason.MediaType, rec.Header().Get(echo.HeaderContentType))
	body := decode(t, rec)
	require.Contains(t, body, "@error")
	errDoc := body["@error"].(map[string]any)
	assert.Equal(t, title, errDoc["@message"])
	if description != "" {
		assert.Equal(t, []any{description}, errDoc["@messages"])
	}
	assert.Equal(t, map[string]any{"profile": map[string]any{"href": mason.ErrorProfile}}, body["@controls"])
	assert.NotEmpty(t, body["resource_url"])
}

func TestAuth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	unconfigured := newTestServer(t, withoutAdminKey())

	tests := []struct {
		name    string
		srv     *testServer
		key     string
		wantMsg string
	}{
		{name: "missing key", srv: srv, key: "", wantMsg: "Missing API key"},
		{name: "invalid key", srv: srv, key: "not-the-key", wantMsg: "Invalid API key"},
		{name: "no admin key", srv: unconfigured, key: testKey, wantMsg: "Admin key not configured"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			for _, target := range []string{"/api/users/", "/api/recipes/1/", "/api/reviews/1/"} {
				rec := test.srv.do(t, http.MethodGet, target, "", withKey(test.key))
				require.Equal(t, http.StatusUnauthorized, rec.Code)
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, map[string]string{"error": "Unauthorized", "message": test.wantMsg}, body)
			}
		})
	}

	t.Run("rejected writes do not run", func(t *testing.T) {
		t.Parallel()
		rec := srv.do(t, http.MethodDelete, "/api/ingredients/Ingredient%201/", "", withKey(""))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		_, err := srv.store.GetIngredientByName(t.Context(), "Ingredient 1")
		require.NoError(t, err)
	})

	t.Run("valid key", func(t *testing.T) {
		t.Parallel()
		rec := srv.do(t, http.MethodGet, "/api/users/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, mason.MediaType, rec.Header().Get(echo.HeaderContentType))
	})
}

func TestAuth_Metrics(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	srv.do(t, http.MethodGet, "/api/users/", "", withKey(""))
	srv.do(t, http.MethodGet, "/api/users/", "", withKey("wrong"))
	srv.do(t, http.MethodGet, "/api/users/", "", withKey("wrong"))
	assert.InDelta(t, 1, testutil.ToFloat64(srv.metrics.AuthFailuresTotal.WithLabelValues("missing")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(srv.metrics.AuthFailuresTotal.WithLabelValues("invalid")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(
		srv.metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/api/users/", "401")), 0)
}

func TestUnprotected(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	for _, target := range []string{
		"/healthz",
		"/metrics",
		"/profiles/user/",
		"/profiles/recipe-ingredient/",
		"/profiles/error/",
		"/cookbook/link-relations/",
	} {
		rec := srv.do(t, http.MethodGet, target, "", withKey(""))
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}

	rec := srv.do(t, http.MethodGet, "/profiles/nothing/", "", withKey(""))
	requireError(t, rec, http.StatusNotFound, "Not Found", "")
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		target string
		kind   string
	}{
		{target: "/api/users/nobody/", kind: "User"},
		{target: "/api/ingredients/Ingredient%209/", kind: "Ingredient"},
		{target: "/api/recipes/99/", kind: "Recipe"},
		{target: "/api/recipes/abc/", kind: "Recipe"},
		{target: "/api/recipes/-1/reviews/", kind: "Recipe"},
		{target: "/api/recipes/99/ingredients/", kind: "Recipe"},
		{target: "/api/reviews/99/", kind: "Review"},
	}
	for _, test := range tests {
		rec := srv.do(t, http.MethodGet, test.target, "")
		requireError(t, rec, http.StatusNotFound, "Not Found", test.kind+" resource not found")
		assert.Equal(t, strings.ReplaceAll(test.target, "%20", " "), decode(t, rec)["resource_url"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	for _, target := range []string{"/api/users/user1/", "/api/recipes/1/ingredients/", "/api/reviews/1/"} {
		rec := srv.do(t, http.MethodPatch, target, "")
		requireError(t, rec, http.StatusMethodNotAllowed, "Method Not Allowed", "Method Not Allowed")
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderAllow))
	}

	t.Run("unknown api paths", func(t *testing.T) {
		t.Parallel()
		rec := srv.do(t, http.MethodGet, "/api/unknown/", "")
		requireError(t, rec, http.StatusNotFound, "Not Found", "Not Found")
	})

	t.Run("guarded", func(t *testing.T) {
		t.Parallel()
		for _, target := range []string{"/api/users/user1/", "/api/unknown/"} {
			rec := srv.do(t, http.MethodPatch, target, "", withKey(""))
			assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		}
	})
}
