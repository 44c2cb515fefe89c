package whois

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"domainshark/internal/admission/metrics"
	"domainshark/internal/admission/service/ratelimit"
	"domainshark/pkg/apperrors"
)

// Service gates WHOIS lookups behind the per-client rate limiter. The
// monthly quota and circuit breaker do not apply here: they meter the paid
// upstream, and WHOIS queries cost nothing.
type Service struct {
	rate    *ratelimit.Service
	client  *Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type ServiceOption func(*Service)

func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithServiceMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(rate *ratelimit.Service, client *Client, opts ...ServiceOption) (*Service, error) {
	if rate == nil {
		return nil, fmt.Errorf("rate limit service is required")
	}
	if client == nil {
		return nil, fmt.Errorf("whois client is required")
	}

	svc := &Service{rate: rate, client: client}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Check runs one rate-limited WHOIS availability lookup. The tld must be
// the lowercased final label of domain.
func (s *Service) Check(ctx context.Context, client, domain, tld string) (Status, error) {
	if s.rate.CheckAndConsume(ctx, client).Limited {
		return StatusUnknown, apperrors.New(apperrors.CodeRateLimited, "rate limit exceeded")
	}

	result, err := s.client.Lookup(ctx, domain, tld)
	if err != nil {
		if errors.Is(err, ErrUnsupportedTLD) {
			return StatusUnknown, apperrors.New(apperrors.CodeUnsupportedTLD, "tld not supported for whois lookup")
		}
		return StatusUnknown, apperrors.Wrap(err, apperrors.CodeInternal, "whois lookup failed")
	}

	if s.metrics != nil {
		s.metrics.IncrementWhoisLookups(string(result.Status))
	}
	return result.Status, nil
}
