package driven

import (
	"context"

	"github.com/custodia-labs/streamctl/internal/core/domain"
)

// ProcessManager runs external commands. All exec calls go through it so
// platform helpers can be tested without touching the OS.
type ProcessManager interface {
	// Run executes a command and returns its stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ServiceController stops and starts OS services.
type ServiceController interface {
	// CanControl reports whether services can be controlled by this process.
	// Returns domain.ErrNotElevated when administrator rights are missing and
	// errors.ErrUnsupported on platforms without service control.
	CanControl() error

	// Stop stops a service by name.
	Stop(ctx context.Context, name string) error

	// Start starts a service by name.
	Start(ctx context.Context, name string) error
}

// ProcessSuspender suspends and resumes processes by name.
type ProcessSuspender interface {
	// Suspend pauses every process matching name.
	Suspend(ctx context.Context, name string) error

	// Resume continues every process matching name.
	Resume(ctx context.Context, name string) error
}

// SystemInspector enumerates processes and services.
type SystemInspector interface {
	// Processes returns running processes keyed by executable path.
	Processes(ctx context.Context) (map[string]domain.ProcessInfo, error)

	// Services returns OS services keyed by binary path, filtered by a
	// case-insensitive name substring and an exact status. Empty filters match all.
	Services(ctx context.Context, nameFilter, status string) (map[string]domain.ServiceInfo, error)

	// ForegroundProcess returns the executable of the focused window, or "".
	ForegroundProcess(ctx context.Context) (string, error)
}
