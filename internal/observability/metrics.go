package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of the cookbook service. Each instance owns its
// registry so tests can create isolated copies.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts handled requests by method, route and status code.
	RequestsTotal *prometheus.CounterVec
	// RequestDuration records request latency in seconds by method and route.
	RequestDuration *prometheus.HistogramVec
	// AuthFailuresTotal counts requests rejected by the API key guard, by
	// reason.
	AuthFailuresTotal *prometheus.CounterVec
	// CacheLookupsTotal counts recipe list cache lookups by result (hit or
	// miss).
	CacheLookupsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the service collectors along with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cookbook_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cookbook_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cookbook_auth_failures_total",
				Help: "Requests rejected by the API key guard",
			},
			[]string{"reason"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cookbook_cache_lookups_total",
				Help: "Recipe list cache lookups",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.AuthFailuresTotal,
		m.CacheLookupsTotal,
	)
	return m
}

// Observe records a completed request.
func (m *Metrics) Observe(method, route string, status int, latency time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
