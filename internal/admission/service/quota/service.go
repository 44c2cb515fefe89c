// Package quota implements the per-client calendar-month allowance.
// Check and Commit are deliberately split: the caller runs Check before the
// expensive upstream call and Commit only after it succeeds, so failed
// lookups are never charged against the client's monthly budget.
package quota

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
	store     ports.CounterStore
	freeLimit int
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
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

func New(store ports.CounterStore, freeLimit int, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("counter store is required")
	}
	if freeLimit <= 0 {
		return nil, fmt.Errorf("free limit must be positive")
	}

	svc := &Service{
		store:     store,
		freeLimit: freeLimit,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Check reads the client's usage for the current UTC calendar month without
// mutating it. Store unavailability fails open with Degraded set.
func (s *Service) Check(ctx context.Context, client string) models.QuotaStatus {
	key := models.QuotaKey(client, s.now())

	used, _, err := s.store.Get(ctx, key)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "quota read failed", "error", err, "degraded", true)
		}
		if s.metrics != nil {
			s.metrics.IncrementStoreFailures()
		}
		return models.QuotaStatus{Allowed: true, Used: 0, Remaining: s.freeLimit, Degraded: true}
	}

	remaining := s.freeLimit - used
	if remaining < 0 {
		remaining = 0
	}
	status := models.QuotaStatus{
		Allowed:   used < s.freeLimit,
		Used:      used,
		Remaining: remaining,
	}
	if !status.Allowed && s.metrics != nil {
		s.metrics.IncrementQuotaExceeded()
	}
	return status
}

// Commit charges one check against the client's monthly budget, writing
// usedBefore+1 with a TTL that outlives the month. Write failures are
// swallowed: the gated operation has already succeeded and must not be
// failed retroactively.
func (s *Service) Commit(ctx context.Context, client string, usedBefore int) {
	key := models.QuotaKey(client, s.now())

	if err := s.store.Put(ctx, key, usedBefore+1, models.MonthlyCounterTTL); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "quota commit failed", "error", err)
		}
		if s.metrics != nil {
			s.metrics.IncrementStoreFailures()
		}
	}
}

// FreeLimit exposes the configured monthly allowance.
func (s *Service) FreeLimit() int {
	return s.freeLimit
}
