package system

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
)

// Ensure DefaultProcessManager implements the interface.
var _ driven.ProcessManager = (*DefaultProcessManager)(nil)

// DefaultProcessManager runs commands with os/exec.
// On Windows commands run without a console window.
type DefaultProcessManager struct{}

// NewDefaultProcessManager creates a process manager for real commands.
func NewDefaultProcessManager() *DefaultProcessManager {
	return &DefaultProcessManager{}
}

// Run executes a command and returns its stdout.
// Stderr is appended to the error when the command fails.
func (pm *DefaultProcessManager) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return stdout.Bytes(), nil
}
