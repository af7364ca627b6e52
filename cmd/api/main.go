package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/springboard/internal/config"
	"github.com/crucial707/springboard/internal/db"
	"github.com/crucial707/springboard/internal/middleware"
	"github.com/crucial707/springboard/internal/scheduler"
	"github.com/crucial707/springboard/internal/session"
	"github.com/crucial707/springboard/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	serviceName     = "blog"
	shutdownTimeout = 10 * time.Second
	limiterIdle     = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, serviceName, cfg.OTLPEndpoint, cfg.OTLPInsecure)

	// Connect to database and apply migrations before serving
	database, err := db.Connect(ctx, cfg.DatabaseDSN(), db.PoolOptions{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		fatal("connect to database", err)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		fatal("migrate database", err)
	}

	store, closeStore, err := newSessionStore(ctx, cfg, database)
	if err != nil {
		fatal("session store", err)
	}
	defer closeStore()

	// Background jobs
	loginLimiter := middleware.LoginRateLimiter()
	jobs := scheduler.New()
	if p, ok := store.(session.Purger); ok {
		if err := jobs.AddSessionCleanup(cfg.SessionCleanupCron, p); err != nil {
			fatal("schedule session cleanup", err)
		}
	}
	err = jobs.Add("login-limiter-sweep", "@every 5m", func(context.Context) error {
		if n := loginLimiter.Sweep(limiterIdle); n > 0 {
			slog.Debug("swept idle rate limiter buckets", "count", n)
		}
		return nil
	})
	if err != nil {
		fatal("schedule limiter sweep", err)
	}
	jobs.Start()

	router, err := newRouter(database, store, cfg, loginLimiter)
	if err != nil {
		fatal("build router", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr, "tls", cfg.TLSEnabled(), "session_store", cfg.SessionStore)
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			slog.Error("server stopped", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	jobs.Stop(shutdownCtx)
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("tracing shutdown", "error", err)
	}
}

func newLogger(format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

// newSessionStore builds the configured session backend. The returned close
// func releases backend connections other than the shared database.
func newSessionStore(ctx context.Context, cfg config.Config, database *sql.DB) (session.Store, func() error, error) {
	switch cfg.SessionStore {
	case "redis":
		client, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client), client.Close, nil
	case "memory":
		slog.Warn("using in-memory sessions; logins are lost on restart")
		return session.NewMemoryStore(), func() error { return nil }, nil
	default:
		return session.NewPostgresStore(database), func() error { return nil }, nil
	}
}
