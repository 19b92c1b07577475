package system

import (
	"context"
	"strings"
	"sync"
)

// mockProcessManager records commands instead of running them.
type mockProcessManager struct {
	// RunFunc is called when Run is invoked. Nil returns empty output.
	RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockProcessManager) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, strings.Join(append([]string{name}, args...), " "))
	m.mu.Unlock()

	if m.RunFunc == nil {
		return nil, nil
	}
	return m.RunFunc(ctx, name, args...)
}

func (m *mockProcessManager) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
