package config

import (
	"errors"
	"testing"
)

func TestAPIURL(t *testing.T) {
	t.Setenv("BLOG_API_URL", "")
	if got := APIURL(); got != defaultAPIURL {
		t.Errorf("default: got %q", got)
	}
	t.Setenv("BLOG_API_URL", "https://blog.example/")
	if got := APIURL(); got != "https://blog.example" {
		t.Errorf("override: got %q", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BLOG_SESSION", "")

	if _, err := ReadSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := SaveSession("  cookie-value\n"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if got, err := ReadSession(); err != nil || got != "cookie-value" {
		t.Fatalf("ReadSession: %q, %v", got, err)
	}

	t.Setenv("BLOG_SESSION", "from-env")
	if got, _ := ReadSession(); got != "from-env" {
		t.Errorf("env should win: got %q", got)
	}
	t.Setenv("BLOG_SESSION", "")

	if err := ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if err := ClearSession(); err != nil {
		t.Fatalf("second ClearSession: %v", err)
	}
	if _, err := ReadSession(); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after logout, got %v", err)
	}
}
