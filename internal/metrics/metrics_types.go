package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the service
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Validation Metrics
	ValidationsTotal     *prometheus.CounterVec
	InvalidRequestsTotal *prometheus.CounterVec
	GraphNodes           prometheus.Histogram
	GraphEdges           prometheus.Histogram
	DroppedEdgesTotal    prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a metrics registry with all metrics initialized. Each
// registry owns its own prometheus.Registry so tests can create many.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initValidationMetrics()

	return r
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
