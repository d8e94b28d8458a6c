package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts and latency labelled by the matched chi
// route pattern, so path parameters such as session ids do not explode the
// label space.  Unmatched requests are labelled "unmatched".
func Metrics(m *prometheus.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newWrappedResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			prometheus.RecordHTTPRequest(m, r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}

//Personal.AI order the ending
