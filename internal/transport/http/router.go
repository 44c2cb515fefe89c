package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"domainshark/pkg/apperrors"
)

// HealthChecker reports backing-store health for the health endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig carries the optional collaborators for NewRouter.
type RouterConfig struct {
	// Health is the counter store health check; nil means no store is
	// configured, which is still a healthy (fail-open) deployment.
	Health HealthChecker

	// Metrics exposes /metrics when true.
	Metrics bool
}

// NewRouter wires the public endpoints. Every response carries the
// permissive CORS headers; unknown routes and wrong methods both answer
// 404 not_found.
func NewRouter(h *Handler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(ClientIdentity)
	r.Use(CORS)
	r.Use(Recoverer(logger))

	r.Post("/v1/premium-check", h.handlePremiumCheck)
	r.Post("/v1/whois-check", h.handleWhoisCheck)

	r.Get("/healthz", handleHealth(cfg.Health))
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, apperrors.New(apperrors.CodeNotFound, "Endpoint not found"))
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func handleHealth(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health.Health(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
