// Package apiclient wraps the identity backend's REST API for the CRUD
// screens of the console. Every call carries the operator's bearer token,
// supplied per request by a TokenSource.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer token for a request, typically fed from the
// current authclient session.
type TokenSource func(ctx context.Context) (string, error)

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tokens:     tokens,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (opts ListOptions) values() url.Values {
	if opts.Offset == 0 && opts.Limit == 0 {
		return nil
	}
	v := url.Values{}
	v.Set("offset", strconv.Itoa(opts.Offset))
	v.Set("limit", strconv.Itoa(opts.Limit))
	return v
}

// do performs one authenticated JSON round trip. out may be nil for calls
// without a response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[apiclient do] marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("[apiclient do] build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.tokens(ctx)
	if err != nil {
		return fmt.Errorf("[apiclient do] resolve bearer token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[apiclient do] %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			c.log.Debug().Int("status", resp.StatusCode).Msg("API error response without JSON body")
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("[apiclient do] decode response: %w", err)
	}
	return nil
}
