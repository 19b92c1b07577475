package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
)

// Ensure Observer implements the interface.
var _ driven.RequestObserver = (*Observer)(nil)

const namespace = "streamctl"

// Observer records request and refresh metrics in its own registry.
type Observer struct {
	registry *prometheus.Registry

	// requests counts completed requests.
	// Labels: service, method, status ("0" for transport errors)
	requests *prometheus.CounterVec

	// latency measures request duration.
	// Labels: service, method
	latency *prometheus.HistogramVec

	// refreshes counts token refresh attempts.
	// Labels: service, result (success, error)
	refreshes *prometheus.CounterVec
}

// NewObserver creates an observer with a fresh registry.
func NewObserver() *Observer {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Observer{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total platform API requests by status code",
		}, []string{"service", "method", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Platform API request latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service", "method"}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oauth",
			Name:      "token_refreshes_total",
			Help:      "Total token refresh attempts by result",
		}, []string{"service", "result"}),
	}
}

// ObserveRequest records one completed HTTP exchange.
func (o *Observer) ObserveRequest(service, method string, status int, elapsed time.Duration) {
	o.requests.WithLabelValues(service, method, strconv.Itoa(status)).Inc()
	o.latency.WithLabelValues(service, method).Observe(elapsed.Seconds())
}

// ObserveTokenRefresh records one refresh attempt.
func (o *Observer) ObserveTokenRefresh(service string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	o.refreshes.WithLabelValues(service, result).Inc()
}

// Registry returns the registry holding the observer's metrics.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// WriteTextfile writes all metrics to path in the textfile collector
// format. The file is replaced atomically.
func (o *Observer) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, o.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
