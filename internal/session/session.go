// Package session keeps per-client state on the server. The browser only
// holds a signed cookie naming the session id.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Well-known keys.
const (
	UserKey  = "user"
	RoleKey  = "role"
	StateKey = "oauth2_state"
)

// ErrNotFound is returned by a Store when the id is unknown or expired.
var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string
	Values    map[string]json.RawMessage
	ExpiresAt time.Time

	isNew bool
}

// New returns an unsaved session with a random id.
func New(ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Values:    map[string]json.RawMessage{},
		ExpiresAt: time.Now().Add(ttl),
		isNew:     true,
	}
}

// IsNew reports whether the session has not been loaded from a store.
func (s *Session) IsNew() bool { return s.isNew }

// Get decodes the value stored under key into dst. It returns false when the
// key is absent or the stored value does not decode into dst.
func (s *Session) Get(key string, dst any) bool {
	raw, ok := s.Values[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (s *Session) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Values[key] = raw
	return nil
}

func (s *Session) Remove(key string) {
	delete(s.Values, key)
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions. Load returns ErrNotFound for unknown or expired ids.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// Purger is implemented by stores that need expired sessions removed
// periodically. Stores with native expiry (redis) do not implement it.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// record is the serialized form kept by stores.
type record struct {
	Values    map[string]json.RawMessage `json:"values"`
	ExpiresAt time.Time                  `json:"expires_at"`
}

func encodeValues(s *Session) ([]byte, error) {
	return json.Marshal(s.Values)
}

func decodeValues(data []byte) (map[string]json.RawMessage, error) {
	values := map[string]json.RawMessage{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]json.RawMessage{}
	}
	return values, nil
}
