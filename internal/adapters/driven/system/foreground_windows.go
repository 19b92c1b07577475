//go:build windows

package system

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/windows"
)

func foregroundProcess(ctx context.Context) (string, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return "", nil
	}
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return "", err
	}
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", err
	}
	exe, err := p.ExeWithContext(ctx)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(exe, `\`, "/"), nil
}
