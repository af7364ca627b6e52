package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// DefaultSessionSecret is only acceptable outside prod.
const DefaultSessionSecret = "dev-session-secret"

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// Env is "dev" (default) or "prod". When "prod", SESSION_SECRET must be set and not the default.
	Env string

	// SessionStore selects the session backend: "postgres" (default), "redis" or "memory".
	SessionStore string

	// SessionSecret signs the session cookie.
	SessionSecret string

	// SessionTimeoutMinutes is the idle lifetime of a session (default 30).
	SessionTimeoutMinutes int

	// SessionCleanupCron is the cron expression (with seconds) for purging expired sessions.
	SessionCleanupCron string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GoogleClientID     string
	GoogleClientSecret string
	NaverClientID      string
	NaverClientSecret  string

	// OAuthRedirectBase is the public base URL used to build provider callback URLs.
	OAuthRedirectBase string

	// DefaultUserRole is the role given to users on first login: GUEST (default) or USER.
	DefaultUserRole string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent.
	CORSAllowedOrigins []string

	// OTLPEndpoint enables tracing export when set (OTEL_EXPORTER_OTLP_ENDPOINT).
	OTLPEndpoint string
	OTLPInsecure bool
}

var defaults = map[string]any{
	"port":                        "8080",
	"db_host":                     "localhost",
	"db_port":                     "5432",
	"db_name":                     "blogdb",
	"db_user":                     "bloguser",
	"db_pass":                     "blogpass",
	"db_max_open_conns":           25,
	"db_max_idle_conns":           5,
	"env":                         "dev",
	"session_store":               "postgres",
	"session_secret":              DefaultSessionSecret,
	"session_timeout_minutes":     30,
	"session_cleanup_cron":        "0 * * * * *",
	"redis_addr":                  "localhost:6379",
	"redis_password":              "",
	"redis_db":                    0,
	"google_client_id":            "",
	"google_client_secret":        "",
	"naver_client_id":             "",
	"naver_client_secret":         "",
	"oauth_redirect_base":         "http://localhost:8080",
	"default_user_role":           "GUEST",
	"tls_cert_file":               "",
	"tls_key_file":                "",
	"log_format":                  "text",
	"cors_allowed_origins":        "",
	"otel_exporter_otlp_endpoint": "",
	"otel_exporter_otlp_insecure": false,
}

// Load reads defaults, then the optional YAML file named by CONFIG_FILE,
// then environment variables (upper-case keys, e.g. DB_HOST).
func Load() (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := Config{
		Port: v.GetString("port"),

		DBHost: v.GetString("db_host"),
		DBPort: v.GetString("db_port"),
		DBName: v.GetString("db_name"),
		DBUser: v.GetString("db_user"),
		DBPass: v.GetString("db_pass"),

		DBMaxOpenConns: positive(v.GetInt("db_max_open_conns"), 25),
		DBMaxIdleConns: positive(v.GetInt("db_max_idle_conns"), 5),

		Env: v.GetString("env"),

		SessionStore:          strings.ToLower(v.GetString("session_store")),
		SessionSecret:         v.GetString("session_secret"),
		SessionTimeoutMinutes: positive(v.GetInt("session_timeout_minutes"), 30),
		SessionCleanupCron:    v.GetString("session_cleanup_cron"),

		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),

		GoogleClientID:     v.GetString("google_client_id"),
		GoogleClientSecret: v.GetString("google_client_secret"),
		NaverClientID:      v.GetString("naver_client_id"),
		NaverClientSecret:  v.GetString("naver_client_secret"),
		OAuthRedirectBase:  strings.TrimRight(v.GetString("oauth_redirect_base"), "/"),
		DefaultUserRole:    v.GetString("default_user_role"),

		TLSCertFile: v.GetString("tls_cert_file"),
		TLSKeyFile:  v.GetString("tls_key_file"),

		LogFormat: v.GetString("log_format"),

		CORSAllowedOrigins: parseCORSOrigins(v.GetString("cors_allowed_origins")),

		OTLPEndpoint: v.GetString("otel_exporter_otlp_endpoint"),
		OTLPInsecure: v.GetBool("otel_exporter_otlp_insecure"),
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.SessionStore {
	case "postgres", "redis", "memory":
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	if c.Env == "prod" && (c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret) {
		return errors.New("SESSION_SECRET must be set in prod")
	}
	return nil
}

// TLSEnabled reports whether both certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// DatabaseDSN is the lib/pq keyword DSN.
func (c Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPass,
	)
}

// DatabaseURL is the URL form required by the migrator.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func positive(n, fallback int) int {
	if n > 0 {
		return n
	}
	return fallback
}
