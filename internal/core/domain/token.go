package domain

import (
	"math"
	"time"
)

// Token is an OAuth2 token record as stored in a service configuration.
type Token struct {
	// AccessToken is the credential sent with API calls.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens without user interaction.
	RefreshToken string `json:"refresh_token,omitempty"`
	// ExpiresAt is the expiry as epoch seconds. Zero means no expiry was reported.
	ExpiresAt float64 `json:"expires_at,omitempty"`
	// TokenType is typically "bearer".
	TokenType string `json:"token_type,omitempty"`
}

// HasAccessToken returns true if the record carries an access token.
func (t *Token) HasAccessToken() bool {
	return t != nil && t.AccessToken != ""
}

// IsExpired returns true if the token expired before now. A token without
// an expiry is expired when it can be refreshed, and valid otherwise.
func (t *Token) IsExpired(now time.Time) bool {
	if t == nil {
		return false
	}
	if t.ExpiresAt == 0 {
		return t.RefreshToken != ""
	}
	return float64(now.UnixNano())/float64(time.Second) > t.ExpiresAt
}

// Expiry returns ExpiresAt as a time. The zero time is returned when no expiry is set.
func (t *Token) Expiry() time.Time {
	if t == nil || t.ExpiresAt == 0 {
		return time.Time{}
	}
	sec, frac := math.Modf(t.ExpiresAt)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

// SetExpiry stores expiry as epoch seconds. A zero time clears it.
func (t *Token) SetExpiry(expiry time.Time) {
	if expiry.IsZero() {
		t.ExpiresAt = 0
		return
	}
	t.ExpiresAt = float64(expiry.UnixNano()) / float64(time.Second)
}

// TokenState is the lifecycle state of a service's token.
type TokenState string

// Token lifecycle states.
const (
	// TokenStateNone means no token is stored.
	TokenStateNone TokenState = "no_token"
	// TokenStateValid means the stored token can be used immediately.
	TokenStateValid TokenState = "valid"
	// TokenStateExpired means the token must be refreshed or reacquired.
	TokenStateExpired TokenState = "expired"
	// TokenStateAwaitingAuthorization means the browser flow is in progress.
	TokenStateAwaitingAuthorization TokenState = "awaiting_user_authorization"
)

// String returns the string representation.
func (s TokenState) String() string {
	return string(s)
}

// StateOf derives the state of a stored token at the given instant.
// TokenStateAwaitingAuthorization is never derived; only the token manager sets it.
func StateOf(t *Token, now time.Time) TokenState {
	switch {
	case !t.HasAccessToken():
		return TokenStateNone
	case t.IsExpired(now):
		return TokenStateExpired
	default:
		return TokenStateValid
	}
}
