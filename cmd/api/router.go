package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/crucial707/springboard/internal/config"
	"github.com/crucial707/springboard/internal/handlers"
	"github.com/crucial707/springboard/internal/metrics"
	"github.com/crucial707/springboard/internal/middleware"
	"github.com/crucial707/springboard/internal/models"
	"github.com/crucial707/springboard/internal/oauth"
	"github.com/crucial707/springboard/internal/repo"
	"github.com/crucial707/springboard/internal/service"
	"github.com/crucial707/springboard/internal/session"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, services and handlers onto one chi router.
// Pages, OAuth2 login and the API share the session middleware; the API
// additionally requires the USER role.
func newRouter(database *sql.DB, store session.Store, cfg config.Config, loginLimiter *middleware.IPRateLimiter) (http.Handler, error) {
	defaultRole, ok := models.ParseRole(cfg.DefaultUserRole)
	if !ok {
		return nil, fmt.Errorf("unknown DEFAULT_USER_ROLE %q", cfg.DefaultUserRole)
	}

	sessions := session.NewManager(store, []byte(cfg.SessionSecret), time.Duration(cfg.SessionTimeoutMinutes)*time.Minute)
	sessions.Secure = cfg.TLSEnabled()

	posts := service.NewPostsService(repo.NewPostRepo(database))
	posts.OnWrite = metrics.IncPostsWritten

	providers := oauth.RegistryFromConfig(cfg)
	if len(providers.Names()) == 0 {
		slog.Warn("no OAuth2 providers configured; login is disabled")
	}

	indexHandler, err := handlers.NewIndexHandler(posts, providers.Names())
	if err != nil {
		return nil, err
	}
	apiHandler := &handlers.PostsAPIHandler{Service: posts}
	authHandler := &handlers.AuthHandler{
		Providers:   providers,
		Users:       repo.NewUserRepo(database),
		Sessions:    sessions,
		DefaultRole: defaultRole,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(slog.Default()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	// Health and metrics (no session)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			slog.Warn("readiness check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/js/*", handlers.Static())
	r.Get("/hello", handlers.Hello)
	r.Get("/hello/dto", handlers.HelloDTO)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessions))

		// Pages
		r.Get("/", indexHandler.Index)
		r.Get("/posts/save", indexHandler.PostsSave)
		r.Get("/posts/update/{id}", indexHandler.PostsUpdate)

		// OAuth2 login
		r.Get("/logout", authHandler.Logout)
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Get("/oauth2/authorization/{provider}", authHandler.Authorize)
			r.Get("/login/oauth2/code/{provider}", authHandler.Callback)
		})

		// Posts API
		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleUser))
			r.Get("/posts", apiHandler.List)
			r.Post("/posts", apiHandler.Save)
			r.Get("/posts/{id}", apiHandler.FindByID)
			r.Put("/posts/{id}", apiHandler.Update)
			r.Delete("/posts/{id}", apiHandler.Delete)
		})
	})

	return r, nil
}
