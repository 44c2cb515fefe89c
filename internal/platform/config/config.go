package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server needs from the environment.
type Config struct {
	Addr string

	// RedisURL points at the counter store. Empty means no store is
	// configured and every admission gate fails open.
	RedisURL string

	// FreeChecksPerClient is the monthly premium-check allowance per client.
	FreeChecksPerClient int

	// MonthlyCeiling is the global monthly premium-lookup ceiling; the
	// circuit breaker opens once it is reached.
	MonthlyCeiling int

	// UpstreamToken authenticates against the Domainr API. Empty means the
	// premium endpoint always answers service_unavailable.
	UpstreamToken string

	// AlertWebhook receives the one-shot breaker-trip notification. Empty
	// disables alerting.
	AlertWebhook string
}

// Redis client tuning; fixed rather than configurable until a deployment
// needs otherwise.
var (
	RedisDialTimeout  = 2 * time.Second
	RedisReadTimeout  = 500 * time.Millisecond
	RedisWriteTimeout = 500 * time.Millisecond
)

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("DOMAINSHARK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:                addr,
		RedisURL:            os.Getenv("REDIS_URL"),
		FreeChecksPerClient: intEnv("FREE_CHECKS_PER_IP", 5),
		MonthlyCeiling:      intEnv("MONTHLY_QUOTA_LIMIT", 8000),
		UpstreamToken:       os.Getenv("FASTLY_API_TOKEN"),
		AlertWebhook:        os.Getenv("ALERT_WEBHOOK"),
	}
}

func intEnv(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
