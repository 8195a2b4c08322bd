// Package service builds manager reports and dashboards from stored sessions.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	attendance "fieldtrack/internal/attendance/models"
	"fieldtrack/internal/platform/logger"
	"fieldtrack/internal/reporting/metrics"
	"fieldtrack/internal/reporting/models"
)

// Store answers the aggregate queries behind reports. Time bounds are
// half-open [from, to).
type Store interface {
	// DailyEmployeeStats returns one row per employee managed by managerID,
	// including employees without sessions, ordered by name. WorkingHours is
	// not rounded.
	DailyEmployeeStats(ctx context.Context, managerID int64, employeeID *int64, from, to time.Time) ([]models.EmployeeDaySummary, error)
	WeeklyStats(ctx context.Context, employeeID int64, since time.Time) (*models.WeeklyStats, error)
	TeamMembers(ctx context.Context, managerID int64) ([]attendance.Employee, error)
	TeamCheckins(ctx context.Context, memberIDs []int64, from, to time.Time) ([]models.TeamCheckin, error)
	CountOpenSessions(ctx context.Context, memberIDs []int64) (int, error)
	EmployeeCheckins(ctx context.Context, employeeID int64, from, to time.Time) ([]attendance.HistoryEntry, error)
}

// ClientLister lists the clients assigned to an employee.
type ClientLister interface {
	AssignedClients(ctx context.Context, employeeID int64) ([]attendance.Client, error)
}

// SummaryCache stores computed daily summaries. Lookup returns a nil summary
// on a miss along with a generation to hand back to Store.
type SummaryCache interface {
	Lookup(ctx context.Context, key models.SummaryKey) (*models.DailySummary, string, error)
	Store(ctx context.Context, key models.SummaryKey, generation string, summary *models.DailySummary) error
}

// Service is the aggregation engine.
type Service struct {
	store    Store
	clients  ClientLister
	cache    SummaryCache
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	location *time.Location
}

type Option func(s *Service)

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

// WithCache enables daily summary caching.
func WithCache(c SummaryCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithLocation sets the timezone "today" and report dates are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

func New(store Store, clients ClientLister, opts ...Option) *Service {
	s := &Service{
		store:    store,
		clients:  clients,
		logger:   logger.Discard(),
		tracer:   otel.Tracer("fieldtrack/reporting"),
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) startSpan(ctx context.Context, report string, employeeID int64) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "reporting."+report,
		trace.WithAttributes(attribute.Int64("employee_id", employeeID)))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		s.metrics.ObserveQuery(report, start)
	}
}
