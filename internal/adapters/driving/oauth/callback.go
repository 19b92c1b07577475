// Package oauth receives the OAuth authorization redirect and opens the
// user's browser on the authorization page.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// Ensure CallbackServer implements the interface.
var _ driven.CallbackListener = (*CallbackServer)(nil)

// CallbackServer receives the authorization redirect on a local port.
// It answers on every path, since the redirect URI is configured per service.
// Requests without a query string (favicon fetches, browser preconnects)
// are ignored and the server keeps waiting.
type CallbackServer struct {
	mu            sync.Mutex
	port          int
	expectedState string
	codeChan      chan string
	errChan       chan error
	server        *http.Server
	listener      net.Listener
}

// NewCallbackServer creates a new OAuth callback server.
// The expectedState is used to validate the callback matches the request.
func NewCallbackServer(port int, expectedState string) *CallbackServer {
	return &CallbackServer{
		port:          port,
		expectedState: expectedState,
		codeChan:      make(chan string, 1),
		errChan:       make(chan error, 1),
	}
}

// NewListener adapts NewCallbackServer to driven.CallbackListenerFactory.
func NewListener(port int, expectedState string) driven.CallbackListener {
	return NewCallbackServer(port, expectedState)
}

// Start binds the server to localhost on the configured port, the host
// the redirect URI names. Port 0 picks a free port.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleCallback)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := net.JoinHostPort("localhost", strconv.Itoa(s.port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	server := s.server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.sendErr(err)
		}
	}()

	return nil
}

// handleCallback processes the OAuth redirect request.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.RawQuery == "" {
		http.NotFound(w, r)
		return
	}
	query := r.URL.Query()

	// Check for error from provider
	if errParam := query.Get("error"); errParam != "" {
		errDesc := query.Get("error_description")
		s.sendErr(fmt.Errorf("authorization denied: %s - %s", errParam, errDesc))
		writeResult(w, "Authorization failed", errDesc)
		return
	}

	if state := query.Get("state"); state != s.expectedState {
		s.sendErr(fmt.Errorf("%w: got %q", domain.ErrStateMismatch, state))
		writeResult(w, "Authorization failed", "Invalid state parameter.")
		return
	}

	code := query.Get("code")
	if code == "" {
		s.sendErr(fmt.Errorf("%w: no authorization code received", domain.ErrMissingToken))
		writeResult(w, "Authorization failed", "No code received.")
		return
	}

	select {
	case s.codeChan <- code:
	default:
	}

	writeResult(w, "Authorization successful!", "You can close this window and return to streamctl.")
}

func (s *CallbackServer) sendErr(err error) {
	select {
	case s.errChan <- err:
	default:
		logger.Debug("dropping callback error", "error", err)
	}
}

// WaitForCode blocks until the authorization code is received, the timeout
// elapses (domain.ErrTimeout) or ctx is cancelled.
func (s *CallbackServer) WaitForCode(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case code := <-s.codeChan:
		return code, nil
	case err := <-s.errChan:
		return "", err
	case <-timer.C:
		return "", fmt.Errorf("%w after %s", domain.ErrTimeout, timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Stop shuts down the callback server. Safe to call more than once.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.server = nil
	return err
}

var resultPage = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>streamctl</title>
<style>
body{margin:0;height:100vh;display:grid;place-items:center;background:#0e0e10;font-family:system-ui,sans-serif}
main{background:#1f1f23;padding:40px 56px;border-radius:12px;text-align:center}
h1{color:#efeff1;font-size:22px;margin:0 0 8px}
p{color:#adadb8;margin:0}
</style></head>
<body><main><h1>{{.Title}}</h1><p>{{.Message}}</p></main></body>
</html>
`))

// writeResult renders the page shown in the browser tab after the redirect.
func writeResult(w http.ResponseWriter, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Title, Message string }{title, message}
	if err := resultPage.Execute(w, data); err != nil {
		logger.Debug("render callback page", "error", err)
	}
}
