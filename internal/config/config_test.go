package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.SessionStore != "postgres" || cfg.SessionTimeoutMinutes != 30 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.DefaultUserRole != "GUEST" {
		t.Errorf("default role: got %q", cfg.DefaultUserRole)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("DB_MAX_OPEN_CONNS", "-3")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,http://localhost:3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.SessionStore != "redis" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.DBMaxOpenConns != 25 {
		t.Errorf("non-positive pool size not replaced: %d", cfg.DBMaxOpenConns)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://a.example" {
		t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.yaml")
	if err := os.WriteFile(path, []byte("port: \"7070\"\ndb_name: postsdb\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7070" || cfg.DBName != "postsdb" {
		t.Errorf("file not applied: %+v", cfg)
	}
}

func TestLoad_ProdRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "prod")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for default secret in prod")
	}
	t.Setenv("SESSION_SECRET", "a-real-secret")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with secret: %v", err)
	}
}

func TestValidate_UnknownStore(t *testing.T) {
	cfg := Config{SessionStore: "files"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown session store")
	}
}

func TestDatabaseURL_EscapesPassword(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBName: "blog", DBUser: "u", DBPass: "p@ss/word"}
	want := "postgres://u:p%40ss%2Fword@db:5432/blog?sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL: got %q, want %q", got, want)
	}
}
