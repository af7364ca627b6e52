package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/crucial707/springboard/internal/metrics"
	"github.com/crucial707/springboard/internal/models"
	"github.com/crucial707/springboard/internal/oauth"
	"github.com/crucial707/springboard/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UserStore persists logged-in users. *repo.UserRepo satisfies it.
type UserStore interface {
	SaveOrUpdate(ctx context.Context, u models.User) (models.User, error)
}

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Providers *oauth.Registry
	Users     UserStore
	Sessions  *session.Manager

	// DefaultRole is given to users on their first login.
	DefaultRole models.Role
}

// ==========================
// Authorize: redirect to the provider's consent page
// ==========================
func (h *AuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Providers.Get(chi.URLParam(r, "provider"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	state := uuid.NewString()
	if err := s.Set(session.StateKey, state); err != nil {
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if err := h.Sessions.Save(r.Context(), w, s); err != nil {
		slog.Error("save session before login", "provider", p.Name, "error", err)
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, p.AuthCodeURL(state), http.StatusFound)
}

// ==========================
// Callback: exchange the code, upsert the user, log in
// ==========================
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Providers.Get(chi.URLParam(r, "provider"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		metrics.IncLogin(p.Name, "denied")
		slog.Info("login denied by provider", "provider", p.Name, "error", e)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	var want string
	if !s.Get(session.StateKey, &want) || want == "" || q.Get("state") != want {
		metrics.IncLogin(p.Name, "invalid_state")
		http.Error(w, "invalid oauth2 state", http.StatusBadRequest)
		return
	}
	s.Remove(session.StateKey)

	attrs, err := p.FetchAttributes(r.Context(), q.Get("code"))
	if err != nil {
		metrics.IncLogin(p.Name, "error")
		slog.Error("fetch user attributes", "provider", p.Name, "error", err)
		http.Error(w, "login failed", http.StatusBadGateway)
		return
	}

	user, err := h.Users.SaveOrUpdate(r.Context(), attrs.ToUser(h.DefaultRole))
	if err != nil {
		metrics.IncLogin(p.Name, "error")
		slog.Error("save user", "provider", p.Name, "error", err)
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if err := h.login(r.Context(), w, s, user); err != nil {
		metrics.IncLogin(p.Name, "error")
		slog.Error("save login session", "provider", p.Name, "error", err)
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncLogin(p.Name, "success")
	slog.Info("user logged in", "provider", p.Name, "user_id", user.ID, "role", user.Role.Key())
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) login(ctx context.Context, w http.ResponseWriter, s *session.Session, u models.User) error {
	if err := h.Sessions.Renew(ctx, s); err != nil {
		return err
	}
	if err := s.Set(session.UserKey, models.NewSessionUser(u)); err != nil {
		return err
	}
	if err := s.Set(session.RoleKey, u.Role.Key()); err != nil {
		return err
	}
	return h.Sessions.Save(ctx, w, s)
}

// ==========================
// Logout
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := session.FromContext(r.Context()); ok {
		if err := h.Sessions.Destroy(r.Context(), w, s); err != nil {
			slog.Error("destroy session", "error", err)
			http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
