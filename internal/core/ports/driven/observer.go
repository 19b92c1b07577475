package driven

import "time"

// RequestObserver records the outcome of platform API requests.
type RequestObserver interface {
	// ObserveRequest is called once per completed HTTP exchange.
	// status is 0 when the request failed before a response arrived.
	ObserveRequest(service, method string, status int, elapsed time.Duration)

	// ObserveTokenRefresh is called once per refresh attempt.
	ObserveTokenRefresh(service string, err error)
}
