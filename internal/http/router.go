// Package httpapi assembles the HTTP surface: the shared middleware chain,
// health and metrics endpoints, and every module's routes.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"fieldtrack/internal/platform/metrics"
	"fieldtrack/internal/platform/middleware"
	"fieldtrack/pkg/platform/httputil"
	"fieldtrack/pkg/platform/middleware/metadata"
	"fieldtrack/pkg/platform/middleware/requesttime"
	"fieldtrack/pkg/requestcontext"
)

const defaultRequestTimeout = 30 * time.Second

// RouteRegistrar is implemented by every module handler.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// PublicRouteRegistrar mounts routes that are reachable without a token.
type PublicRouteRegistrar interface {
	RegisterPublic(r chi.Router)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Deps holds everything the router needs. Metrics, Registry and Checks are optional.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Registry       *prometheus.Registry
	Validator      middleware.JWTValidator
	RequestTimeout time.Duration
	// TrustedProxies may report the client address in forwarding headers.
	TrustedProxies metadata.TrustedProxies
	// Clock overrides the request clock; tests pin it.
	Clock  func() time.Time
	Checks map[string]HealthCheck
	// PublicMiddleware runs only on public routes, e.g. the login limiter.
	PublicMiddleware []func(http.Handler) http.Handler
	Public           []PublicRouteRegistrar
	Routes           []RouteRegistrar
}

// NewRouter wires the middleware chain, /api/health, /metrics, public routes
// and the authenticated route group.
func NewRouter(d Deps) http.Handler {
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientIP(d.TrustedProxies))
	r.Use(requesttime.MiddlewareWithClock(clock))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(timeout))
	if d.Metrics != nil {
		r.Use(middleware.LatencyMiddleware(d.Metrics))
	}

	r.Get("/api/health", healthHandler(d.Checks, d.Logger))
	if d.Registry != nil {
		r.Handle("/metrics", metrics.Handler(d.Registry))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(d.PublicMiddleware...)
		for _, p := range d.Public {
			p.RegisterPublic(r)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.Validator, d.Logger))
		r.Use(middleware.ContentTypeJSON)
		for _, h := range d.Routes {
			h.Register(r)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, map[string]string{
			"error":             "not_found",
			"error_description": "Route not found",
		})
	})
	return r
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp := healthResponse{Status: "ok", Timestamp: requestcontext.Now(ctx).UTC()}
		status := http.StatusOK

		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
			for name, check := range checks {
				if err := check(ctx); err != nil {
					logger.WarnContext(ctx, "health check failed",
						"dependency", name,
						"error", err,
						"request_id", requestcontext.RequestID(ctx),
					)
					resp.Checks[name] = "unavailable"
					resp.Status = "degraded"
					status = http.StatusServiceUnavailable
					continue
				}
				resp.Checks[name] = "ok"
			}
		}
		httputil.WriteJSON(w, status, resp)
	}
}
