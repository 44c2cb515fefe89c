package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"domainshark/internal/admission/alert"
	"domainshark/internal/admission/metrics"
	"domainshark/internal/admission/ports"
	"domainshark/internal/admission/service/breaker"
	"domainshark/internal/admission/service/quota"
	"domainshark/internal/admission/service/ratelimit"
	"domainshark/internal/admission/store/counter"
	"domainshark/internal/platform/config"
	"domainshark/internal/platform/httpserver"
	"domainshark/internal/platform/logger"
	"domainshark/internal/platform/redis"
	"domainshark/internal/premium"
	httptransport "domainshark/internal/transport/http"
	"domainshark/internal/whois"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	redisClient, err := redis.New(cfg)
	if err != nil {
		// A bad counter store is not fatal: the gates fail open and the
		// service keeps answering, degraded.
		log.Warn("redis unavailable, admission gates run without shared state", "error", err)
	}

	var store ports.CounterStore
	var health httptransport.HealthChecker
	if redisClient != nil {
		store = counter.NewRedisStore(redisClient.Client)
		health = redisClient
		defer redisClient.Close()
	} else {
		store = counter.NewInMemoryStore()
	}

	m := metrics.New()

	rate, err := ratelimit.New(store, ratelimit.WithLogger(log), ratelimit.WithMetrics(m))
	if err != nil {
		return err
	}
	quotas, err := quota.New(store, cfg.FreeChecksPerClient, quota.WithLogger(log), quota.WithMetrics(m))
	if err != nil {
		return err
	}
	notifier := alert.NewWebhookNotifier(cfg.AlertWebhook, alert.WithLogger(log))
	breakers, err := breaker.New(store, cfg.MonthlyCeiling,
		breaker.WithLogger(log),
		breaker.WithMetrics(m),
		breaker.WithNotifier(notifier),
	)
	if err != nil {
		return err
	}

	premiumOpts := []premium.Option{premium.WithLogger(log), premium.WithMetrics(m)}
	if cfg.UpstreamToken != "" {
		premiumOpts = append(premiumOpts, premium.WithUpstream(premium.NewClient(cfg.UpstreamToken)))
	} else {
		log.Warn("no upstream token configured, premium checks will be unavailable")
	}
	premiumSvc, err := premium.New(rate, quotas, breakers, premiumOpts...)
	if err != nil {
		return err
	}

	whoisClient, err := whois.NewClient(whois.NewRegistry(), whois.WithLogger(log))
	if err != nil {
		return err
	}
	whoisSvc, err := whois.NewService(rate, whoisClient,
		whois.WithServiceLogger(log),
		whois.WithServiceMetrics(m),
	)
	if err != nil {
		return err
	}

	handler := httptransport.NewHandler(premiumSvc, whoisSvc, log)
	router := httptransport.NewRouter(handler, log, httptransport.RouterConfig{
		Health:  health,
		Metrics: true,
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting domainshark", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
