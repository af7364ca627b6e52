package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/crucial707/springboard/internal/config"
	"github.com/crucial707/springboard/internal/models"
	"golang.org/x/oauth2"
)

// fakeProvider serves a token endpoint and a user info endpoint that
// requires the issued bearer token.
func fakeProvider(t *testing.T, userInfo string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(userInfo))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func pointAt(p *Provider, srv *httptest.Server) *Provider {
	p.Config.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/authorize",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	p.UserInfoURL = srv.URL + "/userinfo"
	return p
}

func TestGoogle_FetchAttributes(t *testing.T) {
	srv := fakeProvider(t, `{"sub":"1","name":"Jo","email":"jo@example.com","picture":"https://img/jo.png"}`)
	p := pointAt(Google("id", "secret", "http://localhost/login/oauth2/code/google"), srv)

	got, err := p.FetchAttributes(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("FetchAttributes: %v", err)
	}
	want := Attributes{Name: "Jo", Email: "jo@example.com", Picture: "https://img/jo.png"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNaver_FetchAttributes(t *testing.T) {
	srv := fakeProvider(t, `{"resultcode":"00","message":"success","response":{"id":"x","name":"Kim","email":"kim@example.com","profile_image":"https://img/kim.png"}}`)
	p := pointAt(Naver("id", "secret", "http://localhost/login/oauth2/code/naver"), srv)

	got, err := p.FetchAttributes(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("FetchAttributes: %v", err)
	}
	want := Attributes{Name: "Kim", Email: "kim@example.com", Picture: "https://img/kim.png"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFetchAttributes_MissingEmail(t *testing.T) {
	srv := fakeProvider(t, `{"name":"Jo"}`)
	p := pointAt(Google("id", "secret", ""), srv)

	_, err := p.FetchAttributes(context.Background(), "good-code")
	if !errors.Is(err, ErrMissingEmail) {
		t.Fatalf("expected ErrMissingEmail, got %v", err)
	}
}

func TestFetchAttributes_NameFallsBackToEmail(t *testing.T) {
	srv := fakeProvider(t, `{"email":"jo@example.com"}`)
	p := pointAt(Google("id", "secret", ""), srv)

	got, err := p.FetchAttributes(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("FetchAttributes: %v", err)
	}
	if got.Name != "jo@example.com" {
		t.Errorf("Name: got %q", got.Name)
	}
}

func TestFetchAttributes_BadCode(t *testing.T) {
	srv := fakeProvider(t, `{}`)
	p := pointAt(Google("id", "secret", ""), srv)

	if _, err := p.FetchAttributes(context.Background(), "bad-code"); err == nil {
		t.Fatal("expected exchange error")
	}
}

func TestAuthCodeURL(t *testing.T) {
	p := Google("client-1", "secret", "http://localhost:8080/login/oauth2/code/google")
	u, err := url.Parse(p.AuthCodeURL("st4te"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("state") != "st4te" || q.Get("client_id") != "client-1" || q.Get("response_type") != "code" {
		t.Errorf("unexpected query: %v", q)
	}
	if q.Get("redirect_uri") != "http://localhost:8080/login/oauth2/code/google" {
		t.Errorf("redirect_uri: %q", q.Get("redirect_uri"))
	}
}

func TestRegistryFromConfig(t *testing.T) {
	r := RegistryFromConfig(config.Config{
		OAuthRedirectBase:  "https://blog.example/",
		GoogleClientID:     "g",
		GoogleClientSecret: "gs",
		NaverClientID:      "n",
	})
	if names := r.Names(); len(names) != 1 || names[0] != "google" {
		t.Fatalf("Names: %v", names)
	}
	p, ok := r.Get("google")
	if !ok || p.Config.RedirectURL != "https://blog.example/login/oauth2/code/google" {
		t.Errorf("google provider: %+v", p)
	}
	if _, ok := r.Get("naver"); ok {
		t.Error("naver registered without secret")
	}
}

func TestAttributes_ToUser(t *testing.T) {
	u := Attributes{Name: "Jo", Email: "jo@example.com", Picture: "p"}.ToUser(models.RoleGuest)
	if u.Name != "Jo" || u.Email != "jo@example.com" || u.Picture != "p" || u.Role != models.RoleGuest {
		t.Errorf("unexpected user: %+v", u)
	}
}
