package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL   = "http://localhost:8080"
	sessionFileName = ".blog_session"
)

// ErrNoSession is returned when no session cookie has been stored.
var ErrNoSession = errors.New("not logged in: run `blog auth login --session <cookie>`")

// APIURL returns the base URL for the blog API.
// It can be overridden with the BLOG_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("BLOG_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, sessionFileName), nil
}

// SaveSession stores the browser session cookie value for later commands.
func SaveSession(value string) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.TrimSpace(value)), 0o600)
}

// ReadSession returns the session cookie value, preferring BLOG_SESSION
// over the stored file.
func ReadSession() (string, error) {
	if v := strings.TrimSpace(os.Getenv("BLOG_SESSION")); v != "" {
		return v, nil
	}
	path, err := sessionPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", ErrNoSession
	}
	return v, nil
}

// ClearSession removes the stored session. Removing a missing file is not an error.
func ClearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
