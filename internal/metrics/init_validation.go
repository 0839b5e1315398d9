package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initValidationMetrics() {
	r.ValidationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_validations_total",
			Help: "Total number of validated pipelines",
		},
		[]string{"result"}, // dag, cyclic
	)

	r.InvalidRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_invalid_requests_total",
			Help: "Total number of pipeline requests rejected before validation",
		},
		[]string{"reason"}, // malformed, shape, too_large, read_error
	)

	r.GraphNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_graph_nodes",
			Help:    "Distinct node count of validated pipelines",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_graph_edges",
			Help:    "Submitted edge count of validated pipelines",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	r.DroppedEdgesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_dropped_edges_total",
			Help: "Total number of edges ignored because an endpoint was not a submitted node",
		},
	)
}
