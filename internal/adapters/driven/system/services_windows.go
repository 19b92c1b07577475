//go:build windows

package system

import (
	"context"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// listServices reads every Win32 service with query-only access rights, so
// it works without administrator rights.
func listServices(_ context.Context) ([]domain.ServiceInfo, error) {
	h, err := windows.OpenSCManager(nil, nil, windows.SC_MANAGER_CONNECT|windows.SC_MANAGER_ENUMERATE_SERVICE)
	if err != nil {
		return nil, err
	}
	m := &mgr.Mgr{Handle: h}
	defer m.Disconnect()

	names, err := m.ListServices()
	if err != nil {
		return nil, err
	}

	services := make([]domain.ServiceInfo, 0, len(names))
	for _, name := range names {
		info, err := queryService(m, name)
		if err != nil {
			logger.Debug("skipping service", "name", name, "error", err)
			continue
		}
		services = append(services, info)
	}
	return services, nil
}

func queryService(m *mgr.Mgr, name string) (domain.ServiceInfo, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return domain.ServiceInfo{}, err
	}
	h, err := windows.OpenService(m.Handle, namePtr, windows.SERVICE_QUERY_CONFIG|windows.SERVICE_QUERY_STATUS)
	if err != nil {
		return domain.ServiceInfo{}, err
	}
	s := &mgr.Service{Name: name, Handle: h}
	defer s.Close()

	cfg, err := s.Config()
	if err != nil {
		return domain.ServiceInfo{}, err
	}
	status, err := s.Query()
	if err != nil {
		return domain.ServiceInfo{}, err
	}

	return domain.ServiceInfo{
		Name:        name,
		DisplayName: cfg.DisplayName,
		BinPath:     cfg.BinaryPathName,
		Status:      stateName(status.State),
		StartType:   startTypeName(cfg.StartType),
	}, nil
}

func stateName(s svc.State) string {
	switch s {
	case svc.Running:
		return "running"
	case svc.Paused:
		return "paused"
	case svc.StartPending:
		return "start_pending"
	case svc.PausePending:
		return "pause_pending"
	case svc.ContinuePending:
		return "continue_pending"
	case svc.StopPending:
		return "stop_pending"
	default:
		return "stopped"
	}
}

func startTypeName(t uint32) string {
	switch t {
	case mgr.StartAutomatic:
		return "automatic"
	case mgr.StartManual:
		return "manual"
	case mgr.StartDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}
