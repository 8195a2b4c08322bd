package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fieldtrack/internal/ratelimit/metrics"
	"fieldtrack/internal/ratelimit/models"
	dErrors "fieldtrack/pkg/domain-errors"
	"fieldtrack/pkg/platform/httputil"
	metadata "fieldtrack/pkg/platform/middleware/metadata"
)

// Limiter is satisfied by the bucket stores.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

type Middleware struct {
	limiter  Limiter
	limit    int
	window   time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	disabled bool
}

type Option func(*Middleware)

func WithMetrics(m *metrics.Metrics) Option {
	return func(mw *Middleware) {
		mw.metrics = m
	}
}

// WithDisabled turns the middleware into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter Limiter, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		limit:   limit,
		window:  window,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.limit <= 0 {
		m.disabled = true
	}
	if m.disabled {
		logger.Info("login rate limiting disabled")
	}
	return m
}

// LoginLimit caps attempts per client IP. A limiter failure lets the
// request through.
func (m *Middleware) LoginLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := metadata.GetClientIP(ctx)
		if ip == "" {
			ip = metadata.ClientIPFromRequest(r, nil)
		}

		result, err := m.limiter.Allow(ctx, models.LoginKey(ip), m.limit, m.window)
		if err != nil {
			m.metrics.IncrementCheckErrors()
			m.logger.ErrorContext(ctx, "ratelimit.check_failed", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			m.metrics.IncrementRejected()
			m.logger.WarnContext(ctx, "ratelimit.login_rejected", "ip", ip)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter(m.now())))
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many login attempts, try again later"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
