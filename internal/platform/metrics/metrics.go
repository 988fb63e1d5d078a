package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the addon server.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    prometheus.Counter
	errorsTotal      prometheus.Counter
	resolutionsTotal *prometheus.CounterVec
	catalogTitles    prometheus.Gauge
	reloadsTotal     *prometheus.CounterVec
}

// New creates and registers Prometheus metrics for the addon.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "addon_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "addon_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	resolutionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "addon_resolutions_total",
		Help: "Resource resolutions by resource kind and outcome",
	}, []string{"resource", "outcome"})
	catalogTitles := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "addon_catalog_titles",
		Help: "Number of titles in the published catalog",
	})
	reloadsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "addon_catalog_reloads_total",
		Help: "Catalog reload attempts by result",
	}, []string{"result"})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		resolutionsTotal,
		catalogTitles,
		reloadsTotal,
	)

	return &Metrics{
		registry:         registry,
		requestsTotal:    requestsTotal,
		errorsTotal:      errorsTotal,
		resolutionsTotal: resolutionsTotal,
		catalogTitles:    catalogTitles,
		reloadsTotal:     reloadsTotal,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncResolution counts one resolution of resource with the given outcome
// (e.g. "ok", "unknown_title").
func (m *Metrics) IncResolution(resource, outcome string) {
	m.resolutionsTotal.WithLabelValues(resource, outcome).Inc()
}

// SetCatalogTitles sets the catalog size gauge.
func (m *Metrics) SetCatalogTitles(n int) {
	m.catalogTitles.Set(float64(n))
}

// ObserveReload records a catalog reload attempt and the resulting catalog size.
func (m *Metrics) ObserveReload(titles int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reloadsTotal.WithLabelValues(result).Inc()
	m.SetCatalogTitles(titles)
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g. catalog size).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
