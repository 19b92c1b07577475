package system

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
)

// Ensure ServiceController implements the interface.
var _ driven.ServiceController = (*ServiceController)(nil)

// ServiceController stops and starts Windows services with "net".
// Other platforms have no service control.
type ServiceController struct {
	pm       driven.ProcessManager
	goos     string
	elevated func() bool
}

// NewServiceController creates a controller for the current platform.
func NewServiceController(pm driven.ProcessManager) *ServiceController {
	return &ServiceController{
		pm:       pm,
		goos:     runtime.GOOS,
		elevated: IsElevated,
	}
}

// CanControl returns domain.ErrNotElevated without administrator rights and
// errors.ErrUnsupported outside Windows.
func (c *ServiceController) CanControl() error {
	if c.goos != "windows" {
		return fmt.Errorf("service control on %s: %w", c.goos, errors.ErrUnsupported)
	}
	if !c.elevated() {
		return domain.ErrNotElevated
	}
	return nil
}

// Stop stops a service by name.
func (c *ServiceController) Stop(ctx context.Context, name string) error {
	return c.net(ctx, "stop", name)
}

// Start starts a service by name.
func (c *ServiceController) Start(ctx context.Context, name string) error {
	return c.net(ctx, "start", name)
}

func (c *ServiceController) net(ctx context.Context, action, name string) error {
	if err := c.CanControl(); err != nil {
		return err
	}
	if _, err := c.pm.Run(ctx, "net", action, name); err != nil {
		return fmt.Errorf("net %s %q: %w", action, name, err)
	}
	return nil
}
