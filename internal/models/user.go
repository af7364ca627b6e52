package models

import "strings"

// Role is the authorization level of a user. Keys carry the ROLE_ prefix
// used by the access-control layer.
type Role string

const (
	RoleGuest Role = "GUEST"
	RoleUser  Role = "USER"
)

const roleKeyPrefix = "ROLE_"

// Key returns the machine-readable key, e.g. "ROLE_USER".
func (r Role) Key() string {
	return roleKeyPrefix + string(r)
}

// Title returns the human-readable name of the role.
func (r Role) Title() string {
	switch r {
	case RoleGuest:
		return "Guest"
	case RoleUser:
		return "User"
	}
	return string(r)
}

func (r Role) Valid() bool {
	return r == RoleGuest || r == RoleUser
}

// ParseRole accepts either the bare name ("USER") or the key ("ROLE_USER").
func ParseRole(s string) (Role, bool) {
	r := Role(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), roleKeyPrefix))
	return r, r.Valid()
}

type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	Role    Role   `json:"role"`
	BaseTime
}

// Update refreshes the provider-owned profile fields on a repeat login.
func (u *User) Update(name, picture string) {
	u.Name = name
	u.Picture = picture
}

// SessionUser is the read-only projection of User kept in the session
// under the "user" key.
type SessionUser struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func NewSessionUser(u User) SessionUser {
	return SessionUser{Name: u.Name, Email: u.Email, Picture: u.Picture}
}
