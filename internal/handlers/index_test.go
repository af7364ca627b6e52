package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/springboard/internal/models"
	"github.com/crucial707/springboard/internal/session"
)

func newIndexHandler(t *testing.T) (*IndexHandler, sqlmock.Sqlmock) {
	t.Helper()
	svc, mock := newPostsService(t)
	h, err := NewIndexHandler(svc, []string{"google", "naver"})
	if err != nil {
		t.Fatalf("NewIndexHandler: %v", err)
	}
	return h, mock
}

func withSessionUser(r *http.Request, u *models.SessionUser) *http.Request {
	s := session.New(time.Minute)
	if u != nil {
		_ = s.Set(session.UserKey, *u)
	}
	return r.WithContext(session.NewContext(r.Context(), s))
}

func TestIndexHandler_Index_Anonymous(t *testing.T) {
	h, mock := newIndexHandler(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM posts ORDER BY id DESC`).
		WillReturnRows(sqlmock.NewRows(postRowColumns).AddRow(1, "<b>title</b>", "c", "author", now, now))

	rr := httptest.NewRecorder()
	h.Index(rr, withSessionUser(httptest.NewRequest("GET", "/", nil), nil))

	body := rr.Body.String()
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(body, siteTitle) {
		t.Error("page title missing")
	}
	if !strings.Contains(body, "&lt;b&gt;title&lt;/b&gt;") || strings.Contains(body, "<b>title</b>") {
		t.Error("post title not escaped")
	}
	if !strings.Contains(body, "2024-03-01 09:00:00") {
		t.Error("modified date missing")
	}
	if !strings.Contains(body, "/oauth2/authorization/google") || strings.Contains(body, "Logged in as") {
		t.Error("anonymous visitor should see login links")
	}
}

func TestIndexHandler_Index_ShowsUserName(t *testing.T) {
	h, mock := newIndexHandler(t)
	mock.ExpectQuery(`FROM posts ORDER BY id DESC`).WillReturnRows(sqlmock.NewRows(postRowColumns))

	rr := httptest.NewRecorder()
	req := withSessionUser(httptest.NewRequest("GET", "/", nil), &models.SessionUser{Name: "Jo", Email: "jo@example.com"})
	h.Index(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, `<span id="user">Jo</span>`) || !strings.Contains(body, "/logout") {
		t.Errorf("user name not rendered:\n%s", body)
	}
	if strings.Contains(body, "/oauth2/authorization/") {
		t.Error("login links shown to logged-in user")
	}
}

func TestIndexHandler_PostsUpdate(t *testing.T) {
	h, mock := newIndexHandler(t)
	now := time.Now()
	mock.ExpectQuery(`FROM posts WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(postRowColumns).AddRow(7, "t7", "body seven", "a", now, now))

	rr := httptest.NewRecorder()
	h.PostsUpdate(rr, requestWithChiURLParams("GET", "/posts/update/7", nil, map[string]string{"id": "7"}))

	body := rr.Body.String()
	if rr.Code != http.StatusOK || !strings.Contains(body, `value="t7"`) || !strings.Contains(body, "body seven") {
		t.Errorf("status %d, body:\n%s", rr.Code, body)
	}
}

func TestIndexHandler_PostsUpdate_NotFound(t *testing.T) {
	h, mock := newIndexHandler(t)
	mock.ExpectQuery(`FROM posts WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	rr := httptest.NewRecorder()
	h.PostsUpdate(rr, requestWithChiURLParams("GET", "/posts/update/8", nil, map[string]string{"id": "8"}))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestIndexHandler_PostsSave(t *testing.T) {
	h, _ := newIndexHandler(t)

	rr := httptest.NewRecorder()
	req := withSessionUser(httptest.NewRequest("GET", "/posts/save", nil), &models.SessionUser{Name: "Jo", Email: "jo@example.com"})
	h.PostsSave(rr, req)

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `id="author" value="Jo"`) {
		t.Errorf("status %d, body:\n%s", rr.Code, rr.Body.String())
	}
}

func TestStatic_ServesScript(t *testing.T) {
	rr := httptest.NewRecorder()
	Static().ServeHTTP(rr, httptest.NewRequest("GET", "/js/app/index.js", nil))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "/api/v1/posts") {
		t.Errorf("status %d", rr.Code)
	}
}
