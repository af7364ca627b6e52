// Package oauth implements the authorization-code login against the
// supported identity providers and maps their user info to Attributes.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/crucial707/springboard/internal/models"
	"golang.org/x/oauth2"
)

// ErrMissingEmail is returned when the provider's user info carries no email;
// users are keyed by email so such a login cannot proceed.
var ErrMissingEmail = errors.New("oauth: provider returned no email")

// Attributes is the provider-neutral view of a user's profile.
type Attributes struct {
	Name    string
	Email   string
	Picture string
}

// ToUser builds a new User from the attributes with the given role.
func (a Attributes) ToUser(role models.Role) models.User {
	return models.User{Name: a.Name, Email: a.Email, Picture: a.Picture, Role: role}
}

// Provider is one configured identity provider.
type Provider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string

	parse func(body []byte) (Attributes, error)
}

// AuthCodeURL returns the consent page URL carrying state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.Config.AuthCodeURL(state)
}

// FetchAttributes exchanges code for a token and reads the user info.
func (p *Provider) FetchAttributes(ctx context.Context, code string) (Attributes, error) {
	tok, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return Attributes{}, fmt.Errorf("oauth %s: exchange code: %w", p.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return Attributes{}, fmt.Errorf("oauth %s: %w", p.Name, err)
	}
	resp, err := p.Config.Client(ctx, tok).Do(req)
	if err != nil {
		return Attributes{}, fmt.Errorf("oauth %s: user info: %w", p.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Attributes{}, fmt.Errorf("oauth %s: read user info: %w", p.Name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Attributes{}, fmt.Errorf("oauth %s: user info status %d", p.Name, resp.StatusCode)
	}

	attrs, err := p.parse(body)
	if err != nil {
		return Attributes{}, fmt.Errorf("oauth %s: decode user info: %w", p.Name, err)
	}
	attrs.Email = strings.TrimSpace(attrs.Email)
	if attrs.Email == "" {
		return Attributes{}, ErrMissingEmail
	}
	if attrs.Name == "" {
		attrs.Name = attrs.Email
	}
	return attrs, nil
}

func decodeJSON[T any](body []byte) (T, error) {
	var v T
	err := json.Unmarshal(body, &v)
	return v, err
}
