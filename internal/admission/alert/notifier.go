// Package alert delivers best-effort webhook notifications. Delivery runs
// on the caller's path budget but any failure is swallowed: alerting must
// never change the outcome of the request that triggered it.
package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const deliveryTimeout = 5 * time.Second

// WebhookNotifier posts breaker-trip alerts to a configured webhook URL.
// An empty URL makes every Notify a silent no-op.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

type Option func(*WebhookNotifier)

func WithLogger(logger *slog.Logger) Option {
	return func(n *WebhookNotifier) {
		n.logger = logger
	}
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(n *WebhookNotifier) {
		n.client = client
	}
}

func NewWebhookNotifier(url string, opts ...Option) *WebhookNotifier {
	n := &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: deliveryTimeout},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify posts a trip notification. Both "text" and "content" fields carry
// the message so Slack- and Discord-style webhooks accept the same payload.
func (n *WebhookNotifier) Notify(ctx context.Context, month string, count, ceiling int) {
	if n.url == "" {
		return
	}

	message := fmt.Sprintf(
		"Domain Shark circuit breaker tripped for %s. %d/%d requests used. Premium search is now disabled until next month.",
		month, count, ceiling,
	)
	payload, err := json.Marshal(map[string]string{
		"text":    message,
		"content": message,
	})
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		n.logFailure(ctx, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logFailure(ctx, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logFailure(ctx, fmt.Errorf("webhook returned status %d", resp.StatusCode))
	}
}

func (n *WebhookNotifier) logFailure(ctx context.Context, err error) {
	if n.logger != nil {
		n.logger.WarnContext(ctx, "alert webhook delivery failed", "error", err)
	}
}
