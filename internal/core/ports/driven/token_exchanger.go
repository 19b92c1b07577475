package driven

import (
	"context"

	"github.com/custodia-labs/streamctl/internal/core/domain"
)

// TokenExchanger talks to a platform's OAuth2 endpoints.
//
// Errors that mean the user must authorize again are wrapped with
// domain.ErrInvalidGrant, domain.ErrMissingToken or domain.ErrInvalidClient.
type TokenExchanger interface {
	// AuthCodeURL builds the authorization URL carrying the CSRF state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a token.
	// The client id and secret are sent explicitly.
	Exchange(ctx context.Context, code string) (*domain.Token, error)

	// Refresh obtains a new token from a refresh token without user interaction.
	Refresh(ctx context.Context, refreshToken string) (*domain.Token, error)
}
