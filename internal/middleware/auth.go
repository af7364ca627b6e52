package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/crucial707/springboard/internal/models"
)

// RequireRole rejects requests without a session user (401) or whose
// session role differs from role (403).
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if LoginUser(r) == nil {
				writeError(w, "unauthenticated", http.StatusUnauthorized)
				return
			}
			if got, ok := SessionRole(r); !ok || got != role {
				writeError(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
