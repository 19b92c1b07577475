package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// Ensure TokenManager implements the interface.
var _ driving.TokenManager = (*TokenManager)(nil)

// DefaultAuthTimeout bounds the wait for the authorization redirect.
const DefaultAuthTimeout = 300 * time.Second

// TokenManagerOptions holds the optional collaborators of a TokenManager.
type TokenManagerOptions struct {
	// Store persists the service configuration after a token change.
	Store driven.ServiceConfigStore
	// Observer records refresh attempts.
	Observer driven.RequestObserver
	// Browser opens the authorization URL. Nil only logs the URL.
	Browser driven.BrowserOpener
	// Timeout bounds the wait for the redirect. Zero means DefaultAuthTimeout.
	Timeout time.Duration
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// TokenManager owns the OAuth2 token of one service: it refreshes expired
// tokens silently and falls back to browser authorization when the stored
// credentials are unusable.
//
// The configuration is mutated in place when a new token is obtained.
// Authorization flows are serialized; concurrent callers wait for the flow
// in progress and then observe its result.
type TokenManager struct {
	service   string
	exchanger driven.TokenExchanger
	listen    driven.CallbackListenerFactory
	store     driven.ServiceConfigStore
	observer  driven.RequestObserver
	browser   driven.BrowserOpener
	timeout   time.Duration
	now       func() time.Time

	flow sync.Mutex

	mu          sync.RWMutex
	cfg         *domain.ServiceConfig
	invalidated bool
	awaiting    bool
	headers     http.Header
	bearer      http.Header
}

// NewTokenManager creates a token manager for a service configuration.
func NewTokenManager(
	service string,
	cfg *domain.ServiceConfig,
	exchanger driven.TokenExchanger,
	listen driven.CallbackListenerFactory,
	opts TokenManagerOptions,
) *TokenManager {
	if cfg.Authorization == nil {
		cfg.Authorization = &domain.Token{}
	}
	m := &TokenManager{
		service:   service,
		cfg:       cfg,
		exchanger: exchanger,
		listen:    listen,
		store:     opts.Store,
		observer:  opts.Observer,
		browser:   opts.Browser,
		timeout:   opts.Timeout,
		now:       opts.Now,
	}
	if m.timeout <= 0 {
		m.timeout = DefaultAuthTimeout
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.setHeadersLocked()
	return m
}

// EnsureValidToken makes sure the stored token can be used immediately.
//
// A valid token only has its headers recomputed. An expired token is
// refreshed; if the platform rejects the refresh token or client, or no
// token exists at all, the interactive flow runs. Only domain.ErrTimeout
// and errors that interactive authorization cannot fix are returned.
func (m *TokenManager) EnsureValidToken(ctx context.Context) error {
	m.flow.Lock()
	defer m.flow.Unlock()

	switch m.State() {
	case domain.TokenStateValid:
		m.mu.Lock()
		m.setHeadersLocked()
		m.mu.Unlock()
		return nil

	case domain.TokenStateExpired:
		err := m.refresh(ctx)
		if err == nil {
			return nil
		}
		if !domain.IsRecoverableAuthError(err) {
			return fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, err)
		}
		logger.Warn("token refresh rejected, requesting authorization",
			"service", m.service, "error", err)
	}

	return m.authorize(ctx)
}

// Invalidate marks the current token as expired so the next
// EnsureValidToken refreshes it.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = true
}

// State reports the current lifecycle state.
func (m *TokenManager) State() domain.TokenState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.awaiting {
		return domain.TokenStateAwaitingAuthorization
	}
	state := domain.StateOf(m.cfg.Authorization, m.now())
	if state == domain.TokenStateValid && m.invalidated {
		return domain.TokenStateExpired
	}
	return state
}

// Headers returns the legacy "OAuth <token>" headers with Client-ID.
func (m *TokenManager) Headers() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.headers.Clone()
}

// BearerHeaders returns the "Bearer <token>" headers with Client-ID.
func (m *TokenManager) BearerHeaders() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bearer.Clone()
}

// Token returns a copy of the current token record.
func (m *TokenManager) Token() domain.Token {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.cfg.Authorization
}

func (m *TokenManager) refresh(ctx context.Context) error {
	m.mu.RLock()
	refreshToken := m.cfg.Authorization.RefreshToken
	m.mu.RUnlock()

	if refreshToken == "" {
		return fmt.Errorf("%w: no refresh token stored", domain.ErrMissingToken)
	}

	logger.Debug("refreshing token", "service", m.service)
	tok, err := m.exchanger.Refresh(ctx, refreshToken)
	if m.observer != nil {
		m.observer.ObserveTokenRefresh(m.service, err)
	}
	if err != nil {
		return err
	}
	if tok.RefreshToken == "" {
		tok.RefreshToken = refreshToken
	}

	m.replaceToken(tok)
	logger.Info("token refreshed", "service", m.service)
	return nil
}

// authorize runs the browser flow: listen on the redirect port, open the
// authorization URL, wait for the code and exchange it.
func (m *TokenManager) authorize(ctx context.Context) error {
	m.mu.RLock()
	port, err := m.cfg.RedirectPort()
	m.mu.RUnlock()
	if err != nil {
		return err
	}

	state := uuid.NewString()
	authURL := m.exchanger.AuthCodeURL(state)

	listener := m.listen(port, state)
	if err := listener.Start(); err != nil {
		return fmt.Errorf("start redirect listener on port %d: %w", port, err)
	}
	defer func() {
		if err := listener.Stop(); err != nil {
			logger.Debug("stop redirect listener", "error", err)
		}
	}()

	m.setAwaiting(true)
	defer m.setAwaiting(false)

	logger.Info("requesting authorization", "service", m.service, "port", port)
	if m.browser == nil {
		logger.Warn("open this url to authorize", "service", m.service, "url", authURL)
	} else if err := m.browser(authURL); err != nil {
		logger.Warn("could not open browser, open this url to authorize",
			"service", m.service, "url", authURL, "error", err)
	}

	code, err := listener.WaitForCode(ctx, m.timeout)
	if err != nil {
		if errors.Is(err, domain.ErrTimeout) {
			logger.Error("no authorization received in time",
				"service", m.service, "timeout", m.timeout.String())
		}
		return fmt.Errorf("wait for authorization: %w", err)
	}

	tok, err := m.exchanger.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	m.replaceToken(tok)
	logger.Info("authorization complete", "service", m.service)
	return nil
}

func (m *TokenManager) replaceToken(tok *domain.Token) {
	m.mu.Lock()
	m.cfg.Authorization = tok
	m.invalidated = false
	m.setHeadersLocked()
	cfg := *m.cfg
	m.mu.Unlock()

	if m.store == nil {
		return
	}
	if err := m.store.Save(m.service, &cfg); err != nil {
		logger.Error("could not persist service configuration", "service", m.service, "error", err)
	}
}

func (m *TokenManager) setAwaiting(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.awaiting = v
}

func (m *TokenManager) setHeadersLocked() {
	access := m.cfg.Authorization.AccessToken
	m.headers = http.Header{}
	m.bearer = http.Header{}
	m.headers.Set("Client-ID", m.cfg.ClientID)
	m.bearer.Set("Client-ID", m.cfg.ClientID)
	m.headers.Set("Authorization", "OAuth "+access)
	m.bearer.Set("Authorization", "Bearer "+access)
}
