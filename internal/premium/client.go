package premium

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.domainr.com"

	// upstreamTimeout bounds the single lookup attempt; there are no
	// retries, so this is also the worst-case upstream wait.
	upstreamTimeout = 10 * time.Second
)

// ErrUpstreamQuota signals the upstream itself rejected the call with a
// quota error (HTTP 429); the caller maps this to quota_exceeded.
var ErrUpstreamQuota = errors.New("upstream quota exhausted")

// Client calls the Domainr status API. Upstream error bodies are never
// propagated: they could contain infrastructure details.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.http = client
	}
}

// NewClient constructs a Domainr client authenticated by token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: upstreamTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status performs one lookup attempt. Failures are not retried so the
// caller's worst-case latency stays bounded.
func (c *Client) Status(ctx context.Context, domain string) (*StatusResponse, error) {
	endpoint := fmt.Sprintf("%s/v2/status?domain=%s", c.baseURL, url.QueryEscape(domain))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Fastly-Key", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrUpstreamQuota
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var data StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}
	return &data, nil
}
