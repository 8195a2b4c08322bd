package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fieldtrack/internal/attendance/assignment"
	attendancehandler "fieldtrack/internal/attendance/handler"
	attendancemetrics "fieldtrack/internal/attendance/metrics"
	attendanceservice "fieldtrack/internal/attendance/service"
	authhandler "fieldtrack/internal/auth/handler"
	authservice "fieldtrack/internal/auth/service"
	httpapi "fieldtrack/internal/http"
	jwttoken "fieldtrack/internal/jwt_token"
	"fieldtrack/internal/platform/config"
	"fieldtrack/internal/platform/httpserver"
	"fieldtrack/internal/platform/logger"
	"fieldtrack/internal/platform/metrics"
	platformredis "fieldtrack/internal/platform/redis"
	ratelimitmetrics "fieldtrack/internal/ratelimit/metrics"
	ratelimit "fieldtrack/internal/ratelimit/middleware"
	"fieldtrack/internal/ratelimit/store/bucket"
	"fieldtrack/internal/reporting/cache"
	reportinghandler "fieldtrack/internal/reporting/handler"
	reportingmetrics "fieldtrack/internal/reporting/metrics"
	reportingservice "fieldtrack/internal/reporting/service"
	"fieldtrack/pkg/platform/circuit"
)

// main wires configuration, storage, services and the HTTP router, then
// serves until SIGINT or SIGTERM.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDefaultSigningKey() {
		log.Warn("JWT_SIGNING_KEY is the development default; set it in production")
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	proxies, err := cfg.Proxies()
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("close database", "error", err)
		}
	}()

	reg := metrics.NewRegistry()
	checks := map[string]httpapi.HealthCheck{}
	if st.db != nil {
		checks["postgres"] = st.db.PingContext
	}

	registry := assignment.New(st.assignments)
	attendanceOpts := []attendanceservice.Option{
		attendanceservice.WithLogger(log),
		attendanceservice.WithMetrics(attendancemetrics.New(reg)),
		attendanceservice.WithLocation(loc),
	}
	reportingOpts := []reportingservice.Option{
		reportingservice.WithLogger(log),
		reportingservice.WithMetrics(reportingmetrics.New(reg)),
		reportingservice.WithLocation(loc),
	}

	var limiter ratelimit.Limiter = bucket.NewInMemoryBucketStore()

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		limiter = bucket.NewRedisBucketStore(redisClient.Client)
		defer redisClient.Close()
		summaries := cache.NewGuarded(
			cache.NewRedis(redisClient.Client, cache.WithTTL(cfg.Reporting.SummaryCacheTTL)),
			circuit.New("summary-cache"),
			log,
		)
		attendanceOpts = append(attendanceOpts, attendanceservice.WithActivityListener(summaries))
		reportingOpts = append(reportingOpts, reportingservice.WithCache(summaries))
		checks["redis"] = redisClient.Health
		log.Info("daily summary cache enabled", "ttl", cfg.Reporting.SummaryCacheTTL.String())
	}

	loginLimit := ratelimit.New(limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, log,
		ratelimit.WithMetrics(ratelimitmetrics.New(reg)),
	)

	jwt := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer)
	auth := authhandler.New(
		authservice.New(st.accounts, jwt,
			authservice.WithLogger(log),
			authservice.WithTokenTTL(cfg.Server.JWTTTL),
		), log)
	attendance := attendancehandler.New(
		attendanceservice.New(st.sessions, st.clients, registry, attendanceOpts...), log)
	reports := reportinghandler.New(
		reportingservice.New(st.reports, registry, reportingOpts...), log)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Metrics:        metrics.New(reg),
		Registry:       reg,
		Validator:      jwttoken.NewJWTServiceAdapter(jwt),
		RequestTimeout: cfg.Server.RequestTimeout,
		TrustedProxies: proxies,
		Checks:         checks,
		PublicMiddleware: []func(http.Handler) http.Handler{
			loginLimit.LoginLimit,
		},
		Public: []httpapi.PublicRouteRegistrar{auth},
		Routes: []httpapi.RouteRegistrar{auth, attendance, reports},
	})

	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.RequestTimeout)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting fieldtrack", "addr", cfg.Server.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
