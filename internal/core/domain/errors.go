package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorrupt indicates a persisted file exists but could not be decoded.
	// A copy of the offending file is kept next to it with an "_error" suffix.
	ErrCorrupt = errors.New("corrupt file")

	// Authentication Errors.

	// ErrTimeout indicates the interactive authorization did not receive a
	// redirect before the configured deadline. It is the only fatal error of
	// the token lifecycle.
	ErrTimeout = errors.New("timeout waiting for authorization redirect")

	// ErrInvalidGrant indicates the refresh token or authorization code was rejected.
	ErrInvalidGrant = errors.New("invalid grant")

	// ErrMissingToken indicates no usable token was available or returned.
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidClient indicates the client id or secret was rejected.
	ErrInvalidClient = errors.New("invalid client")

	// ErrTokenRefreshFailed indicates token refresh failed for a reason that
	// interactive authorization cannot fix (network, server error).
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrNoRedirectPort indicates the redirect URI does not carry a port to listen on.
	ErrNoRedirectPort = errors.New("redirect uri has no port")

	// ErrStateMismatch indicates the redirect carried a state other than the one sent.
	ErrStateMismatch = errors.New("state mismatch")

	// System Errors.

	// ErrNotElevated indicates the process lacks administrator rights.
	ErrNotElevated = errors.New("administrator rights required")
)

// IsRecoverableAuthError reports whether err means the stored credentials
// are unusable and the user has to authorize again.
func IsRecoverableAuthError(err error) bool {
	return errors.Is(err, ErrInvalidGrant) ||
		errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidClient)
}
