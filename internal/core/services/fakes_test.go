package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
)

// fakeExchanger records calls and returns canned tokens.
type fakeExchanger struct {
	mu            sync.Mutex
	refreshToken  *domain.Token
	refreshErr    error
	exchangeToken *domain.Token
	exchangeErr   error
	refreshCalls  int
	exchangeCalls int
	lastCode      string
	lastState     string
}

func (f *fakeExchanger) AuthCodeURL(state string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastState = state
	return "https://auth.example/authorize?state=" + state
}

func (f *fakeExchanger) Exchange(_ context.Context, code string) (*domain.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchangeCalls++
	f.lastCode = code
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	tok := *f.exchangeToken
	return &tok, nil
}

func (f *fakeExchanger) Refresh(_ context.Context, _ string) (*domain.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	tok := *f.refreshToken
	return &tok, nil
}

func (f *fakeExchanger) calls() (refresh, exchange int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls, f.exchangeCalls
}

// fakeListener delivers a fixed code or error.
type fakeListener struct {
	mu       sync.Mutex
	code     string
	waitErr  error
	startErr error
	onWait   func()
	port     int
	state    string
	started  bool
	stopped  bool
	timeout  time.Duration
}

func (f *fakeListener) factory() driven.CallbackListenerFactory {
	return func(port int, state string) driven.CallbackListener {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.port = port
		f.state = state
		return f
	}
}

func (f *fakeListener) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	return nil
}

func (f *fakeListener) WaitForCode(_ context.Context, timeout time.Duration) (string, error) {
	f.mu.Lock()
	f.timeout = timeout
	onWait := f.onWait
	f.mu.Unlock()
	if onWait != nil {
		onWait()
	}
	if f.waitErr != nil {
		return "", f.waitErr
	}
	return f.code, nil
}

func (f *fakeListener) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

// fakeBrowser records opened URLs.
type fakeBrowser struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (f *fakeBrowser) open(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return f.err
}

// fakeObserver counts observations.
type fakeObserver struct {
	mu        sync.Mutex
	requests  []int
	refreshes []error
}

func (f *fakeObserver) ObserveRequest(_, _ string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, status)
}

func (f *fakeObserver) ObserveTokenRefresh(_ string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes = append(f.refreshes, err)
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func epoch(t time.Time) float64 {
	return float64(t.Unix())
}

func testConfig(tok *domain.Token) *domain.ServiceConfig {
	return &domain.ServiceConfig{
		Enabled:              true,
		Scope:                []string{"channel:manage:broadcast"},
		AuthorizationBaseURL: "https://auth.example/authorize",
		TokenURL:             "https://auth.example/token",
		RedirectURI:          "http://localhost:3000/",
		Authorization:        tok,
		ClientID:             "client-id",
		ClientSecret:         "client-secret",
	}
}

func validToken(access string) *domain.Token {
	return &domain.Token{
		AccessToken:  access,
		RefreshToken: "refresh-" + access,
		ExpiresAt:    epoch(testNow.Add(time.Hour)),
		TokenType:    "bearer",
	}
}

func expiredToken(access string) *domain.Token {
	tok := validToken(access)
	tok.ExpiresAt = epoch(testNow.Add(-time.Hour))
	return tok
}

func errRecoverable() error {
	return fmt.Errorf("oauth2: %w", domain.ErrInvalidGrant)
}
