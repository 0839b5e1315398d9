package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pipelinescope/core/internal/metrics"
)

// Metrics records request counts and latencies. Paths are labelled with the
// matched chi route pattern to keep label cardinality bounded.
func Metrics(registry *metrics.Registry) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			registry.HTTPRequestsInFlight.Inc()
			defer registry.HTTPRequestsInFlight.Dec()

			next.ServeHTTP(ww, r)

			path := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			registry.RecordHTTPRequest(r.Method, path, strconv.Itoa(status), time.Since(start))
		})
	}
}
