// Package metrics holds the Prometheus collectors served on /metrics.
package metrics

import (
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpLabels = []string{"method", "path", "status"}

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, httpLabels)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, httpLabels)

	// PostsWrittenTotal counts successful writes by op: create, update or delete.
	PostsWrittenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posts_written_total",
		Help: "Total number of successful post writes by operation",
	}, []string{"op"})

	// LoginsTotal counts OAuth2 callbacks by provider and result:
	// success, denied, invalid_state or error.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Total number of OAuth2 logins by provider and result",
	}, []string{"provider", "result"})

	// SessionsPurgedTotal counts expired sessions removed by the cleanup job.
	SessionsPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_purged_total",
		Help: "Total number of expired sessions deleted by the cleanup job",
	})
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

// NormalizePath replaces numeric path segments with {id} for requests that
// matched no route pattern, e.g. /posts/update/45 -> /posts/update/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

func RecordRequest(method, path string, statusCode int, elapsed time.Duration) {
	labels := []string{method, NormalizePath(path), strconv.Itoa(statusCode)}
	RequestDuration.WithLabelValues(labels...).Observe(elapsed.Seconds())
	RequestTotal.WithLabelValues(labels...).Inc()
}

// IncPostsWritten is wired as the posts service write hook.
func IncPostsWritten(op string) {
	PostsWrittenTotal.WithLabelValues(op).Inc()
}

func IncLogin(provider, result string) {
	LoginsTotal.WithLabelValues(provider, result).Inc()
}

func AddSessionsPurged(n int64) {
	SessionsPurgedTotal.Add(float64(n))
}
