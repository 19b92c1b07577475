package driving

import (
	"context"
	"net/http"

	"github.com/custodia-labs/streamctl/internal/core/domain"
)

// TokenManager owns the OAuth2 token lifecycle of one service.
type TokenManager interface {
	// EnsureValidToken refreshes or reacquires the token as needed.
	// After a nil return the stored token is valid for immediate use.
	// Returns domain.ErrTimeout if interactive authorization timed out.
	EnsureValidToken(ctx context.Context) error

	// Invalidate marks the current token as expired.
	Invalidate()

	// State reports the current lifecycle state.
	State() domain.TokenState

	// Headers returns the legacy "OAuth <token>" headers with Client-ID.
	Headers() http.Header

	// BearerHeaders returns the "Bearer <token>" headers with Client-ID.
	BearerHeaders() http.Header
}
