// Package app contains the hypermedia REST API.
package app

import (
	"embed"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/influxdata/influxdb/pkg/snowflake"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/stolasapp/cookbook/internal/cache"
	"github.com/stolasapp/cookbook/internal/config"
	"github.com/stolasapp/cookbook/internal/hypermedia"
	"github.com/stolasapp/cookbook/internal/observability"
	"github.com/stolasapp/cookbook/internal/pagination"
	"github.com/stolasapp/cookbook/internal/sec"
	"github.com/stolasapp/cookbook/internal/storage"
)

//go:embed static
var staticFiles embed.FS

const (
	apiPrefix   = "/api/"
	maxBodySize = "1M"
)

// New creates the API server. listCache holds the recipe collection and
// metrics, if not nil, records every request.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	store storage.Store,
	listCache cache.Cache,
	metrics *observability.Metrics,
) (*echo.Echo, error) {
	paginator, err := pagination.NewPaginator()
	if err != nil {
		return nil, err
	}

	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)
	srv.Debug = cfg.DevMode
	srv.HTTPErrorHandler = errorHandler(logger)

	ids := snowflake.New(rand.IntN(1023)) //nolint:gosec,mnd // this isn't for crypto
	srv.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: ids.NextString,
		}),
		observeRequests(metrics),
		logRequests(logger),
		middleware.Recover(),
	)

	var onReject func(sec.AuthError)
	if metrics != nil {
		onReject = func(err sec.AuthError) {
			metrics.AuthFailuresTotal.WithLabelValues(err.Reason()).Inc()
		}
	}
	// Group middleware installs catch-all 404 routes that mask 405 responses.
	srv.Use(
		below(apiPrefix, sec.NewAdminKeyMiddleware(store, logger, onReject)),
		below(apiPrefix, middleware.BodyLimit(maxBodySize)),
	)
	api := srv.Group(strings.TrimSuffix(apiPrefix, "/"))

	h := &handler{
		logger:    logger,
		store:     store,
		cache:     listCache,
		cacheTTL:  cfg.Cache.TTL,
		paginator: paginator,
		metrics:   metrics,
		routes:    echoRoutes{srv},
	}
	h.register(api)

	staticFS := echo.MustSubFS(staticFiles, "static")
	srv.StaticFS("/profiles/", echo.MustSubFS(staticFS, "profiles"))
	srv.StaticFS(hypermedia.NamespaceURI, echo.MustSubFS(staticFS, "link-relations"))
	srv.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if metrics != nil && cfg.MetricsAddress == "" {
		srv.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}
	return srv, nil
}

// below applies mw only to requests whose path starts with prefix.
func below(prefix string, mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		scoped := mw(next)
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, prefix) {
				return scoped(c)
			}
			return next(c)
		}
	}
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
				slog.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.LogAttrs(
				req.Context(),
				slog.LevelDebug,
				"request handled",
				attrs...,
			)
			return nil
		}
	}
}

func observeRequests(metrics *observability.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if metrics == nil {
			return next
		}
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.Observe(c.Request().Method, route, c.Response().Status, time.Since(start))
			return err
		}
	}
}
