package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the idle lifetime of a session.
const DefaultTimeout = 30 * time.Minute

// Manager ties the cookie to the store. Handlers that change a session must
// call Save (or Destroy) before writing the response.
type Manager struct {
	Store   Store
	Codec   *CookieCodec
	Timeout time.Duration

	// Secure marks the cookie Secure; set when serving HTTPS.
	Secure bool
}

func NewManager(store Store, secret []byte, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{Store: store, Codec: NewCookieCodec(secret), Timeout: timeout}
}

// Load returns the session named by the request cookie, or a new anonymous
// session when the cookie is missing, forged or points at an expired session.
// Only store failures other than ErrNotFound are returned as errors.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return New(m.Timeout), nil
	}
	id, err := m.Codec.Decode(c.Value)
	if err != nil {
		slog.Debug("discarding session cookie", "error", err)
		return New(m.Timeout), nil
	}
	s, err := m.Store.Load(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return New(m.Timeout), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Save extends the session's lifetime, persists it and sets the cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	s.ExpiresAt = time.Now().Add(m.Timeout)
	if err := m.Store.Save(ctx, s); err != nil {
		return err
	}
	s.isNew = false
	value, err := m.Codec.Encode(s.ID, s.ExpiresAt)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.Timeout.Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Renew gives the session a fresh id, dropping the old one from the store.
// Call on login so a pre-login id cannot be reused.
func (m *Manager) Renew(ctx context.Context, s *Session) error {
	if !s.isNew {
		if err := m.Store.Delete(ctx, s.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	s.ID = uuid.NewString()
	s.isNew = true
	return nil
}

// NeedsRefresh reports whether a loaded session is past half its lifetime
// and should be saved again to slide its expiry.
func (m *Manager) NeedsRefresh(s *Session) bool {
	return !s.isNew && time.Until(s.ExpiresAt) < m.Timeout/2
}

// Destroy removes the session and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if !s.isNew {
		if err := m.Store.Delete(ctx, s.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return nil
}
