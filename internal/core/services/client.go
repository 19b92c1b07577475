package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// Ensure Client implements the interface.
var _ driving.ServiceClient = (*Client)(nil)

// ClientOptions configures a Client.
type ClientOptions struct {
	// HTTPClient performs requests. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client
	// RateLimit is the sustained requests per second. Zero disables limiting.
	RateLimit float64
	// Burst is the maximum burst size. Values below 1 become 1.
	Burst int
	// RetryUnauthorized replays a request once after a 401 triggered a
	// successful reauthorization.
	RetryUnauthorized bool
	// Observer records request outcomes.
	Observer driven.RequestObserver
	// Assignations resolves generic categories to platform categories.
	Assignations driven.AssignationStore
}

// Client issues authenticated calls against one platform and transforms
// channel metadata for it.
type Client struct {
	def          domain.ServiceDefinition
	tokens       *TokenManager
	http         *http.Client
	limiter      *rate.Limiter
	retry        bool
	observer     driven.RequestObserver
	assignations driven.AssignationStore
	submitter    driven.ChannelSubmitter
}

// NewClient creates a client for a service.
func NewClient(def domain.ServiceDefinition, tokens *TokenManager, opts ClientOptions) *Client {
	c := &Client{
		def:          def,
		tokens:       tokens,
		http:         opts.HTTPClient,
		retry:        opts.RetryUnauthorized,
		observer:     opts.Observer,
		assignations: opts.Assignations,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// SetSubmitter attaches the platform adapter used by SubmitChannel.
// Submitters usually call back into Request, so they are attached after construction.
func (c *Client) SetSubmitter(s driven.ChannelSubmitter) {
	c.submitter = s
}

// Name returns the canonical service name.
func (c *Client) Name() string {
	return c.def.Name
}

// Tokens exposes the token manager.
func (c *Client) Tokens() driving.TokenManager {
	return c.tokens
}

// Request performs an authenticated HTTP call.
//
// The token is validated first. A 401 response triggers exactly one
// reauthorization and is returned as-is unless retrying is enabled.
// Non-2xx responses are logged, never returned as errors. Errors are
// returned for transport failures and for authorization timeouts.
func (c *Client) Request(
	ctx context.Context,
	method, address string,
	opts driving.RequestOptions,
) (*domain.APIResponse, error) {
	caller := callerName(2)

	if err := c.tokens.EnsureValidToken(ctx); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, method, address, opts)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("unauthorized, requesting another token",
			"service", c.def.Name, "caller", caller, "address", address)
		c.tokens.Invalidate()
		if err := c.tokens.EnsureValidToken(ctx); err != nil {
			if errors.Is(err, domain.ErrTimeout) {
				return nil, err
			}
			logger.Error("reauthorization failed", "service", c.def.Name, "error", err)
		} else if c.retry {
			resp, err = c.do(ctx, method, address, opts)
			if err != nil {
				return nil, err
			}
		}
	}

	c.logResponse(caller, address, resp)
	return resp, nil
}

func (c *Client) do(
	ctx context.Context,
	method, address string,
	opts driving.RequestOptions,
) (*domain.APIResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	target, err := c.resolve(address, opts.Params)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	switch {
	case opts.Headers != nil:
		req.Header = opts.Headers.Clone()
	case opts.Bearer:
		req.Header = c.tokens.BearerHeaders()
	default:
		req.Header = c.tokens.Headers()
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		c.observe(req.Method, 0, start)
		return nil, fmt.Errorf("%s %s: %w", req.Method, address, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	c.observe(req.Method, httpResp.StatusCode, start)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &domain.APIResponse{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
	}, nil
}

// resolve joins relative addresses to the API base URL and merges params.
func (c *Client) resolve(address string, params url.Values) (string, error) {
	target := address
	if !strings.Contains(address, "://") {
		target = strings.TrimRight(c.def.APIBaseURL, "/") + "/" + strings.TrimLeft(address, "/")
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: address %q: %v", domain.ErrInvalidInput, address, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(c.def.Name, method, status, time.Since(start))
	}
}

func (c *Client) logResponse(caller, address string, resp *domain.APIResponse) {
	var decoded any
	isJSON := len(resp.Body) > 0 && json.Unmarshal(resp.Body, &decoded) == nil

	if !resp.OK() {
		var body any = string(resp.Body)
		if isJSON {
			body = decoded
		}
		logger.Error("request failed",
			"service", c.def.Name, "caller", caller, "address", address,
			"status", resp.StatusCode, "body", body)
		return
	}

	switch {
	case isJSON:
		logger.Debug("request succeeded", "service", c.def.Name, "caller", caller, "body", decoded)
	case len(resp.Body) > 0:
		logger.Info("request returned a non json body", "service", c.def.Name, "caller", caller,
			"body", string(resp.Body))
	default:
		logger.Debug("request succeeded", "service", c.def.Name, "caller", caller, "status", resp.StatusCode)
	}
}

// callerName returns the short name of the function skip frames up.
func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
