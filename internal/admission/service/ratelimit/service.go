// Package ratelimit implements the per-client fixed-window rate limiter.
// It throttles attempts, not successes: the counter is consumed before the
// gated operation runs.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"domainshark/internal/admission/metrics"
	"domainshark/internal/admission/models"
	"domainshark/internal/admission/ports"
)

type Service struct {
	store   ports.CounterStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the service clock for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(store ports.CounterStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("counter store is required")
	}

	svc := &Service{
		store: store,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// CheckAndConsume reads the client's current minute-bucket count; at or over
// the threshold it reports limited without incrementing, otherwise it
// consumes one slot. Store unavailability fails open with Degraded set:
// a rate-limit outage must loosen protection, never take down the service.
// Concurrent increments are last-write-wins and may under-count by one,
// which is acceptable for a coarse abuse guard.
func (s *Service) CheckAndConsume(ctx context.Context, client string) models.RateLimitResult {
	key := models.RateLimitKey(client, s.now())

	count, _, err := s.store.Get(ctx, key)
	if err != nil {
		s.failOpen(ctx, "rate limit read failed", err)
		return models.RateLimitResult{Limited: false, Degraded: true}
	}

	if count >= models.RateLimitPerMinute {
		if s.metrics != nil {
			s.metrics.IncrementRateLimited()
		}
		return models.RateLimitResult{Limited: true}
	}

	if err := s.store.Put(ctx, key, count+1, models.RateWindowTTL); err != nil {
		s.failOpen(ctx, "rate limit write failed", err)
		return models.RateLimitResult{Limited: false, Degraded: true}
	}

	return models.RateLimitResult{Limited: false}
}

func (s *Service) failOpen(ctx context.Context, msg string, err error) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, "error", err, "degraded", true)
	}
	if s.metrics != nil {
		s.metrics.IncrementStoreFailures()
	}
}
