package driving

import "context"

// Pauser suspends interfering services and processes around an operation.
type Pauser interface {
	// WithPaused pauses everything configured, runs fn, then resumes
	// everything it paused on every exit path.
	WithPaused(ctx context.Context, fn func(ctx context.Context) error) error
}
