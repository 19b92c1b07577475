package driving

import (
	"context"
	"net/http"
	"net/url"

	"github.com/custodia-labs/streamctl/internal/core/domain"
)

// RequestOptions are the optional parts of an authenticated request.
type RequestOptions struct {
	// Headers overrides the default legacy-scheme headers when non-nil.
	Headers http.Header
	// Body is encoded as JSON when non-nil.
	Body any
	// Params are added to the query string.
	Params url.Values
	// Bearer selects the Bearer scheme for the default headers.
	Bearer bool
}

// ServiceClient issues authenticated calls against one platform.
type ServiceClient interface {
	// Name returns the canonical service name.
	Name() string

	// Request performs an authenticated HTTP call. Non-2xx responses are
	// logged and returned without error.
	Request(ctx context.Context, method, address string, opts RequestOptions) (*domain.APIResponse, error)

	// UpdateChannel returns info transformed for this service.
	UpdateChannel(ctx context.Context, info domain.ChannelInfo) (domain.ChannelInfo, error)

	// SubmitChannel transforms info and sends it to the platform.
	SubmitChannel(ctx context.Context, info domain.ChannelInfo) (domain.ChannelInfo, error)

	// Tokens exposes the token manager.
	Tokens() TokenManager
}
