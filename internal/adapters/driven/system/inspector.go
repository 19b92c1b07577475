package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// Ensure Inspector implements the interface.
var _ driven.SystemInspector = (*Inspector)(nil)

// ignoredProcesses are system processes never reported.
var ignoredProcesses = map[string]bool{
	"System Idle Process": true,
	"System":              true,
	"svchost.exe":         true,
	"csrss.exe":           true,
	"services.exe":        true,
	"conhost.exe":         true,
	"wininit.exe":         true,
	"lsass.exe":           true,
	"lsm.exe":             true,
	"winlogon.exe":        true,
	"rundll32.exe":        true,
	"taskkill.exe":        true,
}

// snapshot is the subset of a process the inspector reports.
type snapshot struct {
	Name          string
	Exe           string
	Nice          int32
	NumThreads    int32
	MemoryPercent float64
}

// Inspector enumerates processes with gopsutil and services with the
// platform service manager.
type Inspector struct {
	snapshots  func(ctx context.Context) ([]snapshot, error)
	services   func(ctx context.Context) ([]domain.ServiceInfo, error)
	foreground func(ctx context.Context) (string, error)
}

// NewInspector creates an inspector for the current platform.
func NewInspector() *Inspector {
	return &Inspector{
		snapshots:  processSnapshots,
		services:   listServices,
		foreground: foregroundProcess,
	}
}

// Processes returns running processes keyed by executable path. Several
// processes with the same executable are merged and their memory summed.
// Processes that vanish or deny access while being read are skipped.
func (i *Inspector) Processes(ctx context.Context) (map[string]domain.ProcessInfo, error) {
	snaps, err := i.snapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	result := make(map[string]domain.ProcessInfo)
	for _, s := range snaps {
		if ignoredProcesses[s.Name] {
			continue
		}
		if existing, ok := result[s.Exe]; ok {
			existing.MemoryPercent += s.MemoryPercent
			result[s.Exe] = existing
			continue
		}
		result[s.Exe] = domain.ProcessInfo{
			Name:          s.Name,
			Exe:           s.Exe,
			Nice:          s.Nice,
			NumThreads:    s.NumThreads,
			MemoryPercent: s.MemoryPercent,
		}
	}
	return result, nil
}

// Services returns services keyed by binary path. nameFilter matches a
// case-insensitive substring of the name; status must match exactly.
// Empty filters match everything. Outside Windows the map is empty.
func (i *Inspector) Services(ctx context.Context, nameFilter, status string) (map[string]domain.ServiceInfo, error) {
	all, err := i.services(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	result := make(map[string]domain.ServiceInfo)
	for _, svc := range all {
		if nameFilter != "" && !containsFold(svc.Name, nameFilter) {
			continue
		}
		if status != "" && svc.Status != status {
			continue
		}
		result[svc.BinPath] = svc
	}
	return result, nil
}

// ForegroundProcess returns the executable of the focused window with
// forward slashes, or "" when the platform has no notion of it.
func (i *Inspector) ForegroundProcess(ctx context.Context) (string, error) {
	return i.foreground(ctx)
}

func processSnapshots(ctx context.Context) ([]snapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	snaps := make([]snapshot, 0, len(procs))
	for _, p := range procs {
		s, err := readSnapshot(ctx, p)
		if err != nil {
			logger.Debug("skipping process", "pid", p.Pid, "error", err)
			continue
		}
		snaps = append(snaps, s)
	}
	return snaps, nil
}

func readSnapshot(ctx context.Context, p *process.Process) (snapshot, error) {
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return snapshot{}, err
	}
	exe, err := p.ExeWithContext(ctx)
	if err != nil {
		return snapshot{}, err
	}
	mem, err := p.MemoryPercentWithContext(ctx)
	if err != nil {
		return snapshot{}, err
	}
	// Nice and thread count are informative only.
	nice, _ := p.NiceWithContext(ctx)
	threads, _ := p.NumThreadsWithContext(ctx)

	return snapshot{
		Name:          name,
		Exe:           exe,
		Nice:          nice,
		NumThreads:    threads,
		MemoryPercent: float64(mem),
	}, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
