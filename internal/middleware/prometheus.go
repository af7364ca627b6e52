package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/springboard/internal/metrics"
)

// Prometheus records request duration and count for each request, labelled
// by chi route pattern so ids do not explode cardinality.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)
		metrics.RecordRequest(r.Method, routePattern(r), rec.status, time.Since(start))
	})
}
