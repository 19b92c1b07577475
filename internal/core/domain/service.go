package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

// ServiceDefinition describes a streaming platform known at build time.
// Definitions live in the static service registry.
type ServiceDefinition struct {
	// Name is the canonical service name, substituted for %SERVICE%.
	Name string
	// Scope lists the OAuth scopes requested during authorization.
	Scope []string
	// AuthorizationBaseURL is the OAuth authorization endpoint.
	AuthorizationBaseURL string
	// TokenURL is the OAuth token endpoint.
	TokenURL string
	// RedirectURI is the local address the platform redirects to.
	RedirectURI string
	// APIBaseURL is the base address of the platform API.
	APIBaseURL string
}

// ServiceConfig is the persisted configuration of one service.
// It is loaded once at startup and mutated in place when a new token is obtained.
type ServiceConfig struct {
	Enabled              bool     `json:"enabled"`
	Scope                []string `json:"scope"`
	AuthorizationBaseURL string   `json:"authorization_base_url"`
	TokenURL             string   `json:"token_url"`
	RedirectURI          string   `json:"redirect_uri"`
	Authorization        *Token   `json:"authorization"`
	ClientID             string   `json:"client_id"`
	ClientSecret         string   `json:"client_secret"`
}

// DefaultServiceConfig returns a disabled configuration for a definition,
// with an empty token record and no client credentials.
func DefaultServiceConfig(def ServiceDefinition) ServiceConfig {
	scope := make([]string, len(def.Scope))
	copy(scope, def.Scope)
	return ServiceConfig{
		Enabled:              false,
		Scope:                scope,
		AuthorizationBaseURL: def.AuthorizationBaseURL,
		TokenURL:             def.TokenURL,
		RedirectURI:          def.RedirectURI,
		Authorization:        &Token{},
	}
}

// RedirectPort returns the TCP port of the redirect URI.
func (c *ServiceConfig) RedirectPort() (int, error) {
	u, err := url.Parse(c.RedirectURI)
	if err != nil {
		return 0, fmt.Errorf("parse redirect uri %q: %w", c.RedirectURI, err)
	}
	if u.Port() == "" {
		return 0, fmt.Errorf("%w: %s", ErrNoRedirectPort, c.RedirectURI)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%w: %s", ErrNoRedirectPort, c.RedirectURI)
	}
	return port, nil
}

// Validate checks that the fields needed for the OAuth flow are present.
func (c *ServiceConfig) Validate() error {
	switch {
	case c.ClientID == "":
		return fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	case c.TokenURL == "":
		return fmt.Errorf("%w: token_url is required", ErrInvalidInput)
	case c.AuthorizationBaseURL == "":
		return fmt.Errorf("%w: authorization_base_url is required", ErrInvalidInput)
	}
	return nil
}
