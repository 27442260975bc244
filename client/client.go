package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/rs/zerolog/log"
)

// TokenSource yields a usable access token for an outgoing request.
// *auth.Manager satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config controls the authenticated client.
type Config struct {
	// Tokens supplies the bearer token attached to each request. Required.
	Tokens TokenSource

	// BaseURL is prepended to relative request paths.
	BaseURL string

	// SkipPaths lists URL path prefixes that are dispatched without a
	// bearer token, e.g. login or registration endpoints that are called
	// before any token exists.
	SkipPaths []string

	// Timeout bounds each request. Zero keeps the library default.
	Timeout time.Duration
}

// Client dispatches HTTP requests with a bearer token attached. The token
// is resolved per request, so an expired token is refreshed transparently
// before the request goes out. A request whose path matches the skip list
// is sent without a token.
type Client struct {
	http *req.Client
	cfg  Config
}

// New creates an authenticated client around cfg.
func New(cfg Config) (*Client, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("client: Config.Tokens is required")
	}

	httpClient := req.C()
	if cfg.BaseURL != "" {
		httpClient.SetBaseURL(cfg.BaseURL)
	}
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	c := &Client{http: httpClient, cfg: cfg}
	httpClient.OnBeforeRequest(c.attachToken)
	return c, nil
}

// R starts a new request on the underlying client.
func (c *Client) R() *req.Request {
	return c.http.R()
}

// Get fetches url with the bearer token attached.
func (c *Client) Get(ctx context.Context, url string) (*req.Response, error) {
	return c.http.R().SetContext(ctx).Get(url)
}

// attachToken resolves the access token and sets the Authorization header.
// A failed resolution fails the request; there is no fallback to a stale
// token.
func (c *Client) attachToken(_ *req.Client, r *req.Request) error {
	if c.skipped(r.RawURL) {
		log.Debug().Str("url", r.RawURL).Msg("Dispatching request without a token")
		return nil
	}

	token, err := c.cfg.Tokens.Token(r.Context())
	if err != nil {
		log.Error().Err(err).Str("url", r.RawURL).Msg("Failed to resolve access token for request")
		return err
	}
	r.SetBearerAuthToken(token)
	return nil
}

// skipped reports whether the request URL's path matches one of the
// configured skip prefixes.
func (c *Client) skipped(rawURL string) bool {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}
	for _, prefix := range c.cfg.SkipPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
