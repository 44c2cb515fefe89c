// Package breaker implements the global monthly circuit breaker guarding
// the paid upstream. State is derived from the month's counter key: a new
// month starts at zero, which is what closes the breaker again.
package breaker

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
	store    ports.CounterStore
	ceiling  int
	notifier ports.AlertNotifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
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

// WithNotifier installs the alert notifier invoked on the trip transition.
func WithNotifier(n ports.AlertNotifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithClock overrides the service clock for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(store ports.CounterStore, ceiling int, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("counter store is required")
	}
	if ceiling <= 0 {
		return nil, fmt.Errorf("ceiling must be positive")
	}

	svc := &Service{
		store:   store,
		ceiling: ceiling,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Check derives the breaker state from the current month's counter without
// mutating it. Store unavailability fails open with Degraded set.
func (s *Service) Check(ctx context.Context) models.BreakerStatus {
	count, _, err := s.store.Get(ctx, models.CircuitKey(s.now()))
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "breaker read failed", "error", err, "degraded", true)
		}
		if s.metrics != nil {
			s.metrics.IncrementStoreFailures()
		}
		return models.BreakerStatus{Open: false, RequestCount: 0, Degraded: true}
	}

	status := models.BreakerStatus{Open: count >= s.ceiling, RequestCount: count}
	if status.Open && s.metrics != nil {
		s.metrics.IncrementBreakerRejections()
	}
	return status
}

// Commit records one completed paid lookup against the month's counter and
// reports whether this call tripped the breaker. The alert fires only on
// the exact closed-to-open transition (count below the ceiling before,
// at or above it after), so at most one notification goes out per month
// regardless of trailing traffic. Two requests racing near the ceiling can
// both observe the pre-trip count and both fire; the backing store is
// eventually consistent and that looseness is tolerated rather than locked
// away.
func (s *Service) Commit(ctx context.Context) bool {
	now := s.now()
	key := models.CircuitKey(now)

	count, _, err := s.store.Get(ctx, key)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "breaker commit read failed", "error", err)
		}
		if s.metrics != nil {
			s.metrics.IncrementStoreFailures()
		}
		return false
	}

	newCount := count + 1
	if err := s.store.Put(ctx, key, newCount, models.MonthlyCounterTTL); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "breaker commit write failed", "error", err)
		}
		if s.metrics != nil {
			s.metrics.IncrementStoreFailures()
		}
		return false
	}

	tripped := newCount >= s.ceiling && count < s.ceiling
	if tripped {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "circuit breaker tripped",
				"month", models.YearMonth(now),
				"count", newCount,
				"ceiling", s.ceiling,
			)
		}
		if s.metrics != nil {
			s.metrics.IncrementBreakerTrips()
		}
		if s.notifier != nil {
			s.notifier.Notify(ctx, models.YearMonth(now), newCount, s.ceiling)
		}
	}
	return tripped
}
