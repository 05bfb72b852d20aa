package httpinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
)

// Client performs the installer's GET requests. Every request carries the
// same browser User-Agent, which keeps the unauthenticated GitHub API from
// rejecting it outright.
type Client struct {
	client *http.Client
	logger zerolog.Logger
}

// ClientOption customizes a Client
type ClientOption func(*clientOptions)

type clientOptions struct {
	apiURL string
	token  string
	base   http.RoundTripper
}

// WithGitHubToken authenticates requests to the host of apiURL
func WithGitHubToken(apiURL, token string) ClientOption {
	return func(o *clientOptions) {
		o.apiURL = apiURL
		o.token = token
	}
}

// WithBaseTransport replaces http.DefaultTransport underneath the client
func WithBaseTransport(base http.RoundTripper) ClientOption {
	return func(o *clientOptions) {
		o.base = base
	}
}

// NewClient creates a client. A zero timeout means no timeout.
func NewClient(userAgent string, timeout time.Duration, logger zerolog.Logger, opts ...ClientOption) *Client {
	options := &clientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return &Client{
		client: &http.Client{
			Timeout:   timeout,
			Transport: NewRoundTripperWithAuth(options.base, userAgent, options.apiURL, options.token),
		},
		logger: logger.With().Str("component", "http").Logger(),
	}
}

// Get issues a GET request. A 403 or 429 is reported as ErrRateLimited and
// any other non-2xx status as a network error. The caller closes the body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewError(domain.KindNetwork, "request", fmt.Errorf("failed to create request: %w", err))
	}

	c.logger.Debug().Str("url", url).Msg("GET")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.NewError(domain.KindNetwork, "request", fmt.Errorf("HTTP request failed: %w", err))
	}

	c.logger.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("response")

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		return nil, domain.NewError(domain.KindRateLimited, "request", domain.ErrRateLimited)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, domain.Errorf(domain.KindNetwork, "request", "%s returned %d: %s", url, resp.StatusCode, string(body))
	}

	return resp, nil
}

// GetJSON fetches url and decodes the JSON body into v
func (c *Client) GetJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return domain.NewError(domain.KindDecode, "decode", fmt.Errorf("failed to decode response from %s: %w", url, err))
	}
	return nil
}

// Download writes the full body of url to path, replacing any existing file
func (c *Client) Download(ctx context.Context, url, path string) (int64, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	file, err := os.Create(path)
	if err != nil {
		return 0, domain.NewError(domain.KindIO, "write", err)
	}

	n, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, domain.NewError(domain.KindIO, "write", fmt.Errorf("failed to save %s: %w", path, err))
	}

	c.logger.Debug().Str("path", path).Int64("bytes", n).Msg("downloaded")
	return n, nil
}
