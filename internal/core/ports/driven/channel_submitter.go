package driven

import (
	"context"

	"github.com/custodia-labs/streamctl/internal/core/domain"
)

// ChannelSubmitter sends transformed channel metadata to a platform.
type ChannelSubmitter interface {
	// Submit applies info to the authenticated user's channel.
	Submit(ctx context.Context, info domain.ChannelInfo) error
}
