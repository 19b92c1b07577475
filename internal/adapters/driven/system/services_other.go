//go:build !windows

package system

import (
	"context"

	"github.com/custodia-labs/streamctl/internal/core/domain"
)

func listServices(context.Context) ([]domain.ServiceInfo, error) {
	return nil, nil
}
