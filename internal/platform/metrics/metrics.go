// Package metrics exposes Prometheus collectors for the HTTP surface and for
// screening passes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RahulAnswer/health-app/internal/domain/interpret"
)

const namespace = "health_screen"

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on the default registerer.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge

	fields     *prometheus.CounterVec
	extracts   prometheus.Counter
	screenings *prometheus.CounterVec
	results    *prometheus.CounterVec
}

// New registers all collectors, including the Go runtime and process
// collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),
		fields: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_fields_total",
			Help:      "Extraction outcomes per field",
		}, []string{"field", "outcome"}),
		extracts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Number of report texts run through extraction",
		}),
		screenings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "module_runs_total",
			Help:      "Screening module computations",
		}, []string{"module"}),
		results: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_total",
			Help:      "Result rows produced, by module and severity",
		}, []string{"module", "severity"}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency. The route label is the
// registered echo path, never the raw URL, to keep cardinality bounded.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// ObserveExtraction counts found and missing fields for one extraction.
func (m *Metrics) ObserveExtraction(found, missing []string) {
	m.extracts.Inc()
	for _, f := range found {
		m.fields.WithLabelValues(f, "found").Inc()
	}
	for _, f := range missing {
		m.fields.WithLabelValues(f, "missing").Inc()
	}
}

// ObserveModule counts one module computation and its result severities.
// Notes are counted under their own severity like any other row.
func (m *Metrics) ObserveModule(module string, items []interpret.ResultItem) {
	m.screenings.WithLabelValues(module).Inc()
	for _, it := range items {
		m.results.WithLabelValues(module, string(it.Severity)).Inc()
	}
}
