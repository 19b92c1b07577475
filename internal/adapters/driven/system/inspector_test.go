package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/streamctl/internal/core/domain"
)

func fixedSnapshots(snaps ...snapshot) func(context.Context) ([]snapshot, error) {
	return func(context.Context) ([]snapshot, error) { return snaps, nil }
}

func fixedServices(svcs ...domain.ServiceInfo) func(context.Context) ([]domain.ServiceInfo, error) {
	return func(context.Context) ([]domain.ServiceInfo, error) { return svcs, nil }
}

func TestInspector_ProcessesAggregatesByExe(t *testing.T) {
	i := &Inspector{snapshots: fixedSnapshots(
		snapshot{Name: "chrome.exe", Exe: "C:/chrome.exe", Nice: 32, NumThreads: 40, MemoryPercent: 1.5},
		snapshot{Name: "chrome.exe", Exe: "C:/chrome.exe", Nice: 32, NumThreads: 12, MemoryPercent: 0.5},
		snapshot{Name: "obs64.exe", Exe: "C:/obs64.exe", Nice: 128, NumThreads: 30, MemoryPercent: 3},
	)}

	procs, err := i.Processes(context.Background())

	require.NoError(t, err)
	require.Len(t, procs, 2)
	chrome := procs["C:/chrome.exe"]
	assert.InDelta(t, 2.0, chrome.MemoryPercent, 1e-9)
	assert.Equal(t, int32(40), chrome.NumThreads)
	assert.Equal(t, "obs64.exe", procs["C:/obs64.exe"].Name)
}

func TestInspector_ProcessesSkipsIgnored(t *testing.T) {
	i := &Inspector{snapshots: fixedSnapshots(
		snapshot{Name: "svchost.exe", Exe: "C:/Windows/svchost.exe"},
		snapshot{Name: "System", Exe: ""},
		snapshot{Name: "notepad.exe", Exe: "C:/notepad.exe"},
	)}

	procs, err := i.Processes(context.Background())

	require.NoError(t, err)
	assert.Len(t, procs, 1)
	assert.Contains(t, procs, "C:/notepad.exe")
}

func TestInspector_ProcessesError(t *testing.T) {
	i := &Inspector{snapshots: func(context.Context) ([]snapshot, error) {
		return nil, errors.New("access denied")
	}}

	_, err := i.Processes(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list processes")
}

func TestInspector_ServicesFilters(t *testing.T) {
	i := &Inspector{services: fixedServices(
		domain.ServiceInfo{Name: "Spooler", BinPath: "C:/spoolsv.exe", Status: "running"},
		domain.ServiceInfo{Name: "wuauserv", BinPath: "C:/svchost.exe -k netsvcs", Status: "stopped"},
		domain.ServiceInfo{Name: "SysMain", BinPath: "C:/svchost.exe -k sysmain", Status: "running"},
	)}

	tests := []struct {
		name   string
		filter string
		status string
		want   []string
	}{
		{name: "no filter", want: []string{"C:/spoolsv.exe", "C:/svchost.exe -k netsvcs", "C:/svchost.exe -k sysmain"}},
		{name: "name case-insensitive", filter: "SPOOL", want: []string{"C:/spoolsv.exe"}},
		{name: "status", status: "running", want: []string{"C:/spoolsv.exe", "C:/svchost.exe -k sysmain"}},
		{name: "both", filter: "sys", status: "stopped", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs, err := i.Services(context.Background(), tt.filter, tt.status)
			require.NoError(t, err)

			got := make([]string, 0, len(svcs))
			for path := range svcs {
				got = append(got, path)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestInspector_ForegroundProcess(t *testing.T) {
	i := &Inspector{foreground: func(context.Context) (string, error) {
		return "C:/Games/game.exe", nil
	}}

	exe, err := i.ForegroundProcess(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "C:/Games/game.exe", exe)
}

func TestDefaultProcessManager_Run(t *testing.T) {
	pm := NewDefaultProcessManager()

	_, err := pm.Run(context.Background(), "streamctl-command-that-does-not-exist")

	assert.Error(t, err)
}
