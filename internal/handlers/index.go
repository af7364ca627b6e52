package handlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/crucial707/springboard/internal/middleware"
	"github.com/crucial707/springboard/internal/models"
	"github.com/crucial707/springboard/internal/service"
	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:embed templates static
var assetsFS embed.FS

const siteTitle = "스프링부트로 시작하는 웹 서비스 Ver.2"

var pageNames = []string{"index.html", "posts-save.html", "posts-update.html", "not-found.html"}

var pageFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	},
}

// page is the data every template receives. User is the resolved login
// user and is nil for anonymous visitors.
type page struct {
	Title     string
	User      *models.SessionUser
	Providers []string
	Posts     []models.PostListResponse
	Post      models.PostResponse
}

// IndexHandler renders the server-side pages.
type IndexHandler struct {
	Service *service.PostsService

	// Providers names the login buttons shown to anonymous visitors.
	Providers []string

	pages map[string]*template.Template
}

// NewIndexHandler parses every page together with the shared layout.
func NewIndexHandler(svc *service.PostsService, providers []string) (*IndexHandler, error) {
	h := &IndexHandler{Service: svc, Providers: providers, pages: make(map[string]*template.Template)}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(pageFuncs).ParseFS(assetsFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		h.pages[name] = t
	}
	return h, nil
}

// Static serves the page scripts under /js/.
func Static() http.Handler {
	sub, err := fs.Sub(assetsFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func (h *IndexHandler) newPage(r *http.Request) page {
	return page{Title: siteTitle, User: middleware.LoginUser(r), Providers: h.Providers}
}

//
// ==========================
// Main Page
// ==========================
//

func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Service.ListAllDescending(r.Context())
	if err != nil {
		h.internalError(w, r, "list posts", err)
		return
	}

	p := h.newPage(r)
	p.Posts = posts
	h.render(w, r, http.StatusOK, "index.html", p)
}

//
// ==========================
// Post Forms
// ==========================
//

func (h *IndexHandler) PostsSave(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "posts-save.html", h.newPage(r))
}

func (h *IndexHandler) PostsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.render(w, r, http.StatusNotFound, "not-found.html", h.newPage(r))
		return
	}

	post, err := h.Service.GetByID(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		h.render(w, r, http.StatusNotFound, "not-found.html", h.newPage(r))
		return
	}
	if err != nil {
		h.internalError(w, r, "get post", err)
		return
	}

	p := h.newPage(r)
	p.Post = post
	h.render(w, r, http.StatusOK, "posts-update.html", p)
}

// render executes into a buffer so a template failure never leaves a half
// written page behind a 200.
func (h *IndexHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.internalError(w, r, "render "+name, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *IndexHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op+" failed",
		"request_id", chimw.GetReqID(r.Context()),
		"error", err)
	http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
}
