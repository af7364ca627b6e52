package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes bounds JSON bodies; posts are at most a few KiB.
const DefaultMaxBodyBytes = 64 << 10

// MaxBytes caps request bodies of POST, PUT and PATCH. Reads past the limit
// fail, which the JSON handlers report as a bad request.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				if r.Body != nil {
					r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
