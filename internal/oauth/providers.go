package oauth

import (
	"sort"
	"strings"

	"github.com/crucial707/springboard/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

	naverAuthURL     = "https://nid.naver.com/oauth2.0/authorize"
	naverTokenURL    = "https://nid.naver.com/oauth2.0/token"
	naverUserInfoURL = "https://openapi.naver.com/v1/nid/me"
)

// CallbackPath is where providers redirect back to; the provider name is appended.
const CallbackPath = "/login/oauth2/code/"

// Google users: attributes are top level.
func Google(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		Name: "google",
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "profile", "email"},
		},
		UserInfoURL: googleUserInfoURL,
		parse: func(body []byte) (Attributes, error) {
			v, err := decodeJSON[struct {
				Name    string `json:"name"`
				Email   string `json:"email"`
				Picture string `json:"picture"`
			}](body)
			return Attributes{Name: v.Name, Email: v.Email, Picture: v.Picture}, err
		},
	}
}

// Naver nests the profile under "response".
func Naver(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		Name: "naver",
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   naverAuthURL,
				TokenURL:  naverTokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"name", "email", "profile_image"},
		},
		UserInfoURL: naverUserInfoURL,
		parse: func(body []byte) (Attributes, error) {
			v, err := decodeJSON[struct {
				Response struct {
					Name         string `json:"name"`
					Email        string `json:"email"`
					ProfileImage string `json:"profile_image"`
				} `json:"response"`
			}](body)
			r := v.Response
			return Attributes{Name: r.Name, Email: r.Email, Picture: r.ProfileImage}, err
		},
	}
}

// Registry holds the providers that have credentials configured.
type Registry struct {
	providers map[string]*Provider
}

func NewRegistry(providers ...*Provider) *Registry {
	r := &Registry{providers: make(map[string]*Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name] = p
	}
	return r
}

// RegistryFromConfig registers every provider whose client id and secret are set.
func RegistryFromConfig(cfg config.Config) *Registry {
	base := strings.TrimRight(cfg.OAuthRedirectBase, "/")
	var ps []*Provider
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		ps = append(ps, Google(cfg.GoogleClientID, cfg.GoogleClientSecret, base+CallbackPath+"google"))
	}
	if cfg.NaverClientID != "" && cfg.NaverClientSecret != "" {
		ps = append(ps, Naver(cfg.NaverClientID, cfg.NaverClientSecret, base+CallbackPath+"naver"))
	}
	return NewRegistry(ps...)
}

func (r *Registry) Get(name string) (*Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
