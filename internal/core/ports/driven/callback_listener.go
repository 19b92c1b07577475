package driven

import (
	"context"
	"time"
)

// CallbackListener receives the authorization redirect on a local port.
type CallbackListener interface {
	// Start binds the listener. It must return before the browser is opened.
	Start() error

	// WaitForCode blocks until an authorization code arrives, the timeout
	// elapses (domain.ErrTimeout) or ctx is cancelled.
	WaitForCode(ctx context.Context, timeout time.Duration) (string, error)

	// Stop releases the listener. Safe to call more than once.
	Stop() error
}

// CallbackListenerFactory creates a listener for a port and expected state.
type CallbackListenerFactory func(port int, expectedState string) CallbackListener

// BrowserOpener opens a URL in the user's default browser.
type BrowserOpener func(url string) error
