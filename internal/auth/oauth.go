package auth

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// OAuthProviders builds authorization redirect URLs for supported identity providers.
type OAuthProviders struct {
	configs map[string]*oauth2.Config
}

// NewOAuthProviders registers the google and github OAuth applications.
// Providers with an empty client ID are left unregistered.
func NewOAuthProviders(googleClientID, googleRedirect, githubClientID, githubRedirect string) *OAuthProviders {
	p := &OAuthProviders{configs: make(map[string]*oauth2.Config)}

	if googleClientID != "" {
		p.configs["google"] = &oauth2.Config{
			ClientID:    googleClientID,
			RedirectURL: googleRedirect,
			Scopes:      []string{"openid", "email", "profile"},
			Endpoint:    google.Endpoint,
		}
	}
	if githubClientID != "" {
		p.configs["github"] = &oauth2.Config{
			ClientID:    githubClientID,
			RedirectURL: githubRedirect,
			Scopes:      []string{"read:user", "user:email"},
			Endpoint:    github.Endpoint,
		}
	}

	return p
}

// AuthorizationURL returns the provider's consent-screen URL with a fresh state value.
func (p *OAuthProviders) AuthorizationURL(provider string) (string, error) {
	cfg, ok := p.configs[provider]
	if !ok {
		return "", fmt.Errorf("oauth provider %q is not configured", provider)
	}
	return cfg.AuthCodeURL(uuid.NewString(), oauth2.AccessTypeOffline), nil
}
