// Package oauth exchanges and refreshes OAuth2 tokens using golang.org/x/oauth2.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
)

// Ensure Exchanger implements the interface.
var _ driven.TokenExchanger = (*Exchanger)(nil)

// Exchanger talks to the token endpoint of one service. The client id and
// secret are always sent in the request body.
type Exchanger struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewExchanger creates an exchanger from a service configuration.
// A nil httpClient uses a client with a 30s timeout.
func NewExchanger(cfg *domain.ServiceConfig, httpClient *http.Client) *Exchanger {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Exchanger{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scope,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthorizationBaseURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

// AuthCodeURL builds the authorization URL, requesting offline access.
func (e *Exchanger) AuthCodeURL(state string) string {
	return e.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token.
func (e *Exchanger) Exchange(ctx context.Context, code string) (*domain.Token, error) {
	tok, err := e.config.Exchange(e.context(ctx), code)
	if err != nil {
		return nil, classify(err)
	}
	return toDomain(tok), nil
}

// Refresh obtains a new token from a refresh token.
func (e *Exchanger) Refresh(ctx context.Context, refreshToken string) (*domain.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: empty refresh token", domain.ErrMissingToken)
	}
	// An expired token without access token forces the source to refresh.
	src := e.config.TokenSource(e.context(ctx), &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Unix(1, 0),
	})
	tok, err := src.Token()
	if err != nil {
		return nil, classify(err)
	}
	return toDomain(tok), nil
}

func (e *Exchanger) context(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
}

func toDomain(tok *oauth2.Token) *domain.Token {
	out := &domain.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	out.SetExpiry(tok.Expiry)
	return out
}

// classify maps token endpoint failures onto domain errors so callers can
// tell rejected credentials from transport problems.
func classify(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		switch re.ErrorCode {
		case "invalid_grant":
			return fmt.Errorf("%w: %w", domain.ErrInvalidGrant, err)
		case "invalid_client", "unauthorized_client":
			return fmt.Errorf("%w: %w", domain.ErrInvalidClient, err)
		}
		// Twitch answers a bad refresh token with 400 and a message only.
		if re.Response != nil && re.Response.StatusCode == http.StatusBadRequest &&
			strings.Contains(strings.ToLower(string(re.Body)), "invalid refresh token") {
			return fmt.Errorf("%w: %w", domain.ErrInvalidGrant, err)
		}
		return err
	}
	if strings.Contains(err.Error(), "missing access_token") {
		return fmt.Errorf("%w: %w", domain.ErrMissingToken, err)
	}
	return err
}
