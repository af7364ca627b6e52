package middleware

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/springboard/internal/models"
	"github.com/crucial707/springboard/internal/session"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Session loads the request's session (or a fresh anonymous one) into the
// request context. Sessions past half their lifetime are saved again so
// active users are not logged out mid-visit.
func Session(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := m.Load(r)
			if err != nil {
				slog.Error("session load failed",
					"request_id", chimw.GetReqID(r.Context()),
					"error", err)
				writeError(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if m.NeedsRefresh(s) {
				if err := m.Save(r.Context(), w, s); err != nil {
					slog.Warn("session refresh failed", "error", err)
				}
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
		})
	}
}

// LoginUser resolves the logged-in user of the request: the SessionUser
// stored under the "user" key. It returns nil for anonymous requests, for
// requests outside the Session middleware and when the stored value is not a
// SessionUser.
func LoginUser(r *http.Request) *models.SessionUser {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return nil
	}
	var u models.SessionUser
	if !s.Get(session.UserKey, &u) || u.Email == "" {
		return nil
	}
	return &u
}

// SessionRole returns the role stored at login, if any.
func SessionRole(r *http.Request) (models.Role, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return "", false
	}
	var key string
	if !s.Get(session.RoleKey, &key) {
		return "", false
	}
	return models.ParseRole(key)
}
