//go:build !windows

package system

import "context"

func foregroundProcess(context.Context) (string, error) {
	return "", nil
}
