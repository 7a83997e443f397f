package middleware

import (
	"net/http"
	"time"

	"github.com/davidbz/chargeflow/internal/metrics"
	"github.com/davidbz/chargeflow/internal/observability"
)

const unmatchedRoute = "unmatched"

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Metrics records request count and latency per route pattern.
func Metrics(collector *metrics.Collector) Middleware {
	if collector == nil {
		return passthrough
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			// ServeMux sets Pattern on the request it routed.
			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}
			elapsed := time.Since(started)
			collector.ObserveRequest(r.Method, route, rec.status, elapsed)

			observability.FromContext(r.Context()).Info("request completed",
				observability.String("route", route),
				observability.Int("status", rec.status),
				observability.Duration("duration", elapsed),
			)
		})
	}
}
