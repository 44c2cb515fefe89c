package premium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"domainshark/internal/admission/metrics"
	"domainshark/internal/admission/service/breaker"
	"domainshark/internal/admission/service/quota"
	"domainshark/internal/admission/service/ratelimit"
	"domainshark/pkg/apperrors"
)

// CheckResult is the caller-visible outcome of one premium check.
type CheckResult struct {
	Status          Status
	RemainingChecks int
}

// Service sequences the admission gates around the paid upstream call:
// rate limiter, circuit breaker read, quota read, upstream lookup, status
// classification, then the two post-success commits.
type Service struct {
	rate     *ratelimit.Service
	quotas   *quota.Service
	breakers *breaker.Service
	upstream *Client
	logger   *slog.Logger
	metrics  *metrics.Metrics
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

// WithUpstream installs the paid lookup client. Leaving it unset models a
// missing upstream credential: every check answers service_unavailable.
func WithUpstream(client *Client) Option {
	return func(s *Service) {
		s.upstream = client
	}
}

func New(rate *ratelimit.Service, quotas *quota.Service, breakers *breaker.Service, opts ...Option) (*Service, error) {
	if rate == nil {
		return nil, fmt.Errorf("rate limit service is required")
	}
	if quotas == nil {
		return nil, fmt.Errorf("quota service is required")
	}
	if breakers == nil {
		return nil, fmt.Errorf("breaker service is required")
	}

	svc := &Service{
		rate:     rate,
		quotas:   quotas,
		breakers: breakers,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Check runs one premium availability lookup for the given client identity.
// Any rejection at an early gate short-circuits the remaining steps; the
// rate limiter is consumed even for rejected requests since it throttles
// attempts, while quota and breaker counters are charged only after the
// upstream call succeeds.
func (s *Service) Check(ctx context.Context, client, domain string) (CheckResult, error) {
	if s.rate.CheckAndConsume(ctx, client).Limited {
		return CheckResult{}, apperrors.New(apperrors.CodeRateLimited, "rate limit exceeded")
	}

	if s.breakers.Check(ctx).Open {
		return CheckResult{}, apperrors.New(apperrors.CodeServiceUnavailable, "monthly ceiling reached")
	}

	quotaStatus := s.quotas.Check(ctx, client)
	if !quotaStatus.Allowed {
		return CheckResult{}, apperrors.New(apperrors.CodeQuotaExceeded, "monthly quota exhausted")
	}

	if s.upstream == nil {
		return CheckResult{}, apperrors.New(apperrors.CodeServiceUnavailable, "upstream not configured")
	}

	start := time.Now()
	resp, err := s.upstream.Status(ctx, domain)
	if s.metrics != nil {
		s.metrics.ObserveUpstreamLatency(time.Since(start).Seconds())
	}
	if err != nil {
		if errors.Is(err, ErrUpstreamQuota) {
			return CheckResult{}, apperrors.Wrap(err, apperrors.CodeQuotaExceeded, "upstream quota exhausted")
		}
		if s.logger != nil {
			// Never log the domain; the error carries no request detail.
			s.logger.WarnContext(ctx, "upstream lookup failed", "error", err)
		}
		return CheckResult{}, apperrors.Wrap(err, apperrors.CodeServiceUnavailable, "upstream lookup failed")
	}

	status := Classify(resp, domain)
	if s.metrics != nil {
		s.metrics.IncrementPremiumLookups(string(status))
	}

	// The lookup succeeded; charge the quota and the global ceiling. The
	// two commits are independent: a failure in one must not block the
	// other, and neither may fail the already-successful response.
	g, commitCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.quotas.Commit(commitCtx, client, quotaStatus.Used)
		return nil
	})
	g.Go(func() error {
		s.breakers.Commit(commitCtx)
		return nil
	})
	_ = g.Wait()

	remaining := quotaStatus.Remaining - 1
	if remaining < 0 {
		remaining = 0
	}
	return CheckResult{Status: status, RemainingChecks: remaining}, nil
}
