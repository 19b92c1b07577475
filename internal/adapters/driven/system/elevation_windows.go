//go:build windows

package system

import "golang.org/x/sys/windows"

// IsElevated reports whether the process runs with administrator rights.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
