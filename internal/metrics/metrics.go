package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordValidation records the outcome of one pipeline validation
func (r *Registry) RecordValidation(nodeCount, edgeCount, droppedEdges int, isDAG bool) {
	result := "cyclic"
	if isDAG {
		result = "dag"
	}
	r.ValidationsTotal.WithLabelValues(result).Inc()
	r.GraphNodes.Observe(float64(nodeCount))
	r.GraphEdges.Observe(float64(edgeCount))
	r.DroppedEdgesTotal.Add(float64(droppedEdges))
}

// RecordInvalidRequest records a request rejected before validation
func (r *Registry) RecordInvalidRequest(reason string) {
	r.InvalidRequestsTotal.WithLabelValues(reason).Inc()
}
