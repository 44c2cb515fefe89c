package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts admission outcomes in aggregate. Labels never carry client
// identifiers or domain names.
type Metrics struct {
	RateLimitedTotal        prometheus.Counter
	QuotaExceededTotal      prometheus.Counter
	BreakerRejectionsTotal  prometheus.Counter
	BreakerTripsTotal       prometheus.Counter
	CounterStoreFailures    prometheus.Counter
	UpstreamLatencySeconds  prometheus.Histogram
	WhoisLookupsTotal       *prometheus.CounterVec
	PremiumLookupsTotal     *prometheus.CounterVec
}

// New creates and registers all admission metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		RateLimitedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainshark_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		}),
		QuotaExceededTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainshark_quota_exceeded_total",
			Help: "Requests rejected by the per-client monthly quota",
		}),
		BreakerRejectionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainshark_breaker_rejections_total",
			Help: "Requests rejected while the monthly circuit breaker is open",
		}),
		BreakerTripsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainshark_breaker_trips_total",
			Help: "Closed-to-open transitions of the monthly circuit breaker",
		}),
		CounterStoreFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainshark_counter_store_failures_total",
			Help: "Counter store errors that caused a fail-open default",
		}),
		UpstreamLatencySeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "domainshark_upstream_latency_seconds",
			Help:    "Latency of paid upstream lookups",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		WhoisLookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "domainshark_whois_lookups_total",
			Help: "WHOIS lookups by classified status",
		}, []string{"status"}),
		PremiumLookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "domainshark_premium_lookups_total",
			Help: "Premium lookups by classified status",
		}, []string{"status"}),
	}
}

func (m *Metrics) IncrementRateLimited()       { m.RateLimitedTotal.Inc() }
func (m *Metrics) IncrementQuotaExceeded()     { m.QuotaExceededTotal.Inc() }
func (m *Metrics) IncrementBreakerRejections() { m.BreakerRejectionsTotal.Inc() }
func (m *Metrics) IncrementBreakerTrips()      { m.BreakerTripsTotal.Inc() }
func (m *Metrics) IncrementStoreFailures()     { m.CounterStoreFailures.Inc() }

// ObserveUpstreamLatency records one paid upstream round trip.
func (m *Metrics) ObserveUpstreamLatency(seconds float64) {
	m.UpstreamLatencySeconds.Observe(seconds)
}

// IncrementWhoisLookups counts a WHOIS lookup outcome by status only.
func (m *Metrics) IncrementWhoisLookups(status string) {
	m.WhoisLookupsTotal.WithLabelValues(status).Inc()
}

// IncrementPremiumLookups counts a premium lookup outcome by status only.
func (m *Metrics) IncrementPremiumLookups(status string) {
	m.PremiumLookupsTotal.WithLabelValues(status).Inc()
}
