package system

import (
	"context"
	"fmt"
	"runtime"

	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
)

// Ensure Suspender implements the interface.
var _ driven.ProcessSuspender = (*Suspender)(nil)

// DefaultPsSuspendPath is where pssuspend is looked up on Windows.
const DefaultPsSuspendPath = "lib/pssuspend.exe"

// Suspender pauses processes by name: with Sysinternals pssuspend on
// Windows, with SIGTSTP/SIGCONT through pkill elsewhere.
type Suspender struct {
	pm        driven.ProcessManager
	goos      string
	pssuspend string
}

// NewSuspender creates a suspender for the current platform.
// An empty pssuspendPath uses DefaultPsSuspendPath.
func NewSuspender(pm driven.ProcessManager, pssuspendPath string) *Suspender {
	if pssuspendPath == "" {
		pssuspendPath = DefaultPsSuspendPath
	}
	return &Suspender{
		pm:        pm,
		goos:      runtime.GOOS,
		pssuspend: pssuspendPath,
	}
}

// Suspend pauses every process matching name.
func (s *Suspender) Suspend(ctx context.Context, name string) error {
	return s.run(ctx, name, false)
}

// Resume continues every process matching name.
func (s *Suspender) Resume(ctx context.Context, name string) error {
	return s.run(ctx, name, true)
}

func (s *Suspender) run(ctx context.Context, name string, resume bool) error {
	cmd, args := s.command(name, resume)
	if _, err := s.pm.Run(ctx, cmd, args...); err != nil {
		verb := "suspend"
		if resume {
			verb = "resume"
		}
		return fmt.Errorf("%s %s: %w", verb, name, err)
	}
	return nil
}

// command builds the platform command. pkill matches the name at the end
// of the process name so "obs" does not match "obs-helper".
func (s *Suspender) command(name string, resume bool) (string, []string) {
	if s.goos == "windows" {
		if resume {
			return s.pssuspend, []string{"-r", name}
		}
		return s.pssuspend, []string{name}
	}
	signal := "-TSTP"
	if resume {
		signal = "-CONT"
	}
	return "pkill", []string{signal, name + "$"}
}
