package services

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/custodia-labs/streamctl/internal/logger"
)

// Task is a unit of background work with an observable result.
type Task struct {
	done chan struct{}
	err  error
}

// Go runs fn in a new goroutine. A panic in fn is recovered and reported
// as the task's error.
func Go(ctx context.Context, fn func(ctx context.Context) error) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("task panicked: %v", r)
				logger.Error("background task panicked", "panic", r, "stack", string(debug.Stack()))
			}
		}()
		t.err = fn(ctx)
	}()
	return t
}

// Done is closed when the task finishes.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Err returns the task's error, or nil while it is still running.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}
