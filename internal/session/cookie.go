package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the cookie carrying the signed session id.
const CookieName = "BLOGSESSION"

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies session cookie values (HS256 JWTs).
type CookieCodec struct {
	secret []byte
}

func NewCookieCodec(secret []byte) *CookieCodec {
	return &CookieCodec{secret: secret}
}

func (c *CookieCodec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	claims := cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode returns the session id of a valid, unexpired cookie value.
func (c *CookieCodec) Decode(value string) (string, error) {
	var claims cookieClaims
	token, err := jwt.ParseWithClaims(value, &claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("session cookie: %w", err)
	}
	if !token.Valid || claims.SessionID == "" {
		return "", errors.New("session cookie: missing session id")
	}
	return claims.SessionID, nil
}
