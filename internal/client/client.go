// Package client is the REST adapter for the storefront API.
//
// Every request waits on a per-resource rate limiter, carries an X-Request-ID
// and, unless it is an auth call, an Authorization header read from the
// TokenSource at send time. Failures are returned as coded errors from
// internal/errors: TRANSPORT for unreachable servers and non-2xx responses,
// INVALID_RESPONSE for 2xx payloads of the wrong shape.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainerrors "github.com/storefront/storefront-admin/internal/errors"
	"github.com/storefront/storefront-admin/internal/id"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/ratelimit"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "storefront-admin/1.0"
)

// TokenSource supplies the bearer token for a request. An empty token means
// the request is sent without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	// RPS and Burst configure the per-resource limiter. RPS <= 0 disables it.
	RPS   float64
	Burst int
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the storefront REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// New creates a client for opts.BaseURL.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL: base,
		http:    httpClient,
		tokens:  opts.Tokens,
		logger:  logger.OrDiscard(opts.Logger),
	}
	if opts.RPS > 0 {
		burst := max(opts.Burst, 1)
		c.limiter = ratelimit.New(opts.RPS, burst)
	}
	return c, nil
}

// Close releases resources held by the client.
func (c *Client) Close() {
	if c.limiter != nil {
		c.limiter.Stop()
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// anonymous requests never carry an Authorization header.
	anonymous bool
}

// doRequest sends req and returns the raw 2xx body.
func (c *Client) doRequest(ctx context.Context, req request) ([]byte, error) {
	if c.limiter != nil {
		key := limiterKey(req.path)
		if !c.limiter.Allow(key) {
			c.logger.Debug("api request throttled", "resource", key)
			if err := c.limiter.Wait(ctx, key); err != nil {
				return nil, domainerrors.Unreachable(fmt.Errorf("rate limit wait: %w", err))
			}
		}
	}

	u := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "encode request body")
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "create request")
	}

	requestID := id.Request()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if !req.anonymous && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "read access token")
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug("api request failed",
			"method", req.method,
			"path", req.path,
			"request_id", requestID,
			"error", err,
		)
		return nil, domainerrors.Unreachable(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.Unreachable(fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug("api request",
		"method", req.method,
		"path", req.path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domainerrors.Transport(resp.StatusCode, serverMessage(data))
	}
	return data, nil
}

// do sends req and decodes a JSON 2xx body into out, when out is non-nil.
func (c *Client) do(ctx context.Context, req request, out any) error {
	data, err := c.doRequest(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInvalidResponse, "Invalid API response")
	}
	return nil
}

// limiterKey buckets requests by their first path segment ("tags", "auth", ...).
func limiterKey(path string) string {
	key, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return key
}

// serverMessage extracts the "message" field of an error body. The API sends
// either a string or, for validation failures, a list of strings.
func serverMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(payload.Message, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return ""
}
