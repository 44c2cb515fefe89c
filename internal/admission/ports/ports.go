// Package ports defines shared interfaces for the admission module.
// Interfaces live here when consumed by multiple services to avoid
// duplication.
package ports

import (
	"context"
	"time"
)

// CounterStore abstracts the get/put-with-expiry key-value service backing
// every admission gate. Implementations are eventually consistent and
// last-write-wins; callers must treat any returned error as a fail-open
// condition rather than surfacing it to the request path.
type CounterStore interface {
	// Get returns the counter value for key and whether the key existed.
	Get(ctx context.Context, key string) (value int, found bool, err error)

	// Put writes the counter value for key with the given expiry.
	Put(ctx context.Context, key string, value int, ttl time.Duration) error
}

// AlertNotifier delivers the breaker-trip notification. Implementations are
// best-effort: delivery failure must never affect the caller path.
type AlertNotifier interface {
	Notify(ctx context.Context, month string, count, ceiling int)
}
