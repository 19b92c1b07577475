package services

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// Ensure Pauser implements the interface.
var _ driving.Pauser = (*Pauser)(nil)

// Pauser stops OS services and suspends processes around an operation.
// Failures to pause or resume a single item are logged and never fatal.
type Pauser struct {
	services  driven.ServiceController
	suspender driven.ProcessSuspender
	settings  domain.PauseSettings
}

// NewPauser creates a pauser for the configured services and processes.
func NewPauser(
	services driven.ServiceController,
	suspender driven.ProcessSuspender,
	settings domain.PauseSettings,
) *Pauser {
	return &Pauser{
		services:  services,
		suspender: suspender,
		settings:  settings,
	}
}

// WithPaused pauses everything configured, runs fn and resumes whatever was
// paused, including when fn returns an error or panics.
func (p *Pauser) WithPaused(ctx context.Context, fn func(ctx context.Context) error) error {
	stopped := p.stopServices(ctx)
	suspended := p.suspendProcesses(ctx)

	defer func() {
		resumeCtx := context.WithoutCancel(ctx)
		p.resumeProcesses(resumeCtx, suspended)
		p.startServices(resumeCtx, stopped)
	}()

	return fn(ctx)
}

func (p *Pauser) stopServices(ctx context.Context) []string {
	if p.services == nil || len(p.settings.Services) == 0 {
		return nil
	}
	if err := p.services.CanControl(); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotElevated):
			logger.Warn("administrator rights are required to pause services",
				"services", p.settings.Services)
		case errors.Is(err, errors.ErrUnsupported):
			logger.Debug("service control is not supported on this platform")
		default:
			logger.Warn("services cannot be paused", "error", err)
		}
		return nil
	}
	return forEach(ctx, p.settings.Services, "stop service", p.services.Stop)
}

func (p *Pauser) startServices(ctx context.Context, names []string) {
	if len(names) == 0 {
		return
	}
	forEach(ctx, names, "start service", p.services.Start)
}

func (p *Pauser) suspendProcesses(ctx context.Context) []string {
	if p.suspender == nil || len(p.settings.Processes) == 0 {
		return nil
	}
	return forEach(ctx, p.settings.Processes, "suspend process", p.suspender.Suspend)
}

func (p *Pauser) resumeProcesses(ctx context.Context, names []string) {
	if len(names) == 0 {
		return
	}
	forEach(ctx, names, "resume process", p.suspender.Resume)
}

// forEach applies op to every name concurrently and returns the names it
// succeeded on, in input order.
func forEach(ctx context.Context, names []string, action string, op func(context.Context, string) error) []string {
	var (
		g  errgroup.Group
		mu sync.Mutex
		ok = make(map[string]bool, len(names))
	)
	for _, name := range names {
		g.Go(func() error {
			if err := op(ctx, name); err != nil {
				logger.Warn("could not "+action, "name", name, "error", err)
				return nil
			}
			logger.Debug(action, "name", name)
			mu.Lock()
			ok[name] = true
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	done := make([]string, 0, len(ok))
	for _, name := range names {
		if ok[name] {
			done = append(done, name)
		}
	}
	return done
}
