// Package service implements the attendance session engine: check-in,
// checkout, active session, and history for one employee at a time.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fieldtrack/internal/attendance/metrics"
	"fieldtrack/internal/attendance/models"
	"fieldtrack/internal/platform/logger"
	"fieldtrack/pkg/calendar"
)

// SessionStore persists attendance sessions. Implementations make
// CreateIfNoneOpen and CloseOpen atomic with respect to concurrent callers.
type SessionStore interface {
	// CreateIfNoneOpen returns sentinel.ErrConflict if the employee already has an open session.
	CreateIfNoneOpen(ctx context.Context, session *models.Session) (*models.Session, error)
	// CloseOpen returns sentinel.ErrNotFound if the employee has no open session.
	CloseOpen(ctx context.Context, employeeID int64, at time.Time) (*models.Session, error)
	FindOpen(ctx context.Context, employeeID int64) (*models.HistoryEntry, error)
	ListHistory(ctx context.Context, employeeID int64, from, to time.Time) ([]models.HistoryEntry, error)
}

type ClientStore interface {
	FindByID(ctx context.Context, id int64) (*models.Client, error)
}

// AuthorizationRegistry decides which clients an employee may visit.
type AuthorizationRegistry interface {
	IsAuthorized(ctx context.Context, employeeID, clientID int64) (bool, error)
	AssignedClients(ctx context.Context, employeeID int64) ([]models.Client, error)
}

// ActivityListener is told about committed check-ins and checkouts. date is
// the check-in's calendar date in the service location.
type ActivityListener interface {
	SessionChanged(ctx context.Context, employeeID int64, date string) error
}

// Service is the attendance session engine.
type Service struct {
	sessions SessionStore
	clients  ClientStore
	registry AuthorizationRegistry
	listener ActivityListener
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

func WithActivityListener(l ActivityListener) Option {
	return func(s *Service) {
		s.listener = l
	}
}

// WithLocation sets the timezone calendar dates are evaluated in. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// New constructs a Service.
func New(sessions SessionStore, clients ClientStore, registry AuthorizationRegistry, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		clients:  clients,
		registry: registry,
		logger:   logger.Discard(),
		tracer:   otel.Tracer("fieldtrack/attendance"),
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// startSpan opens a span and a duration measurement for op.
func (s *Service) startSpan(ctx context.Context, op string, employeeID int64) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "attendance."+op,
		trace.WithAttributes(attribute.Int64("employee_id", employeeID)))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		s.metrics.ObserveOperation(op, start)
	}
}

func (s *Service) notify(ctx context.Context, employeeID int64, checkIn time.Time, requestID string) {
	if s.listener == nil {
		return
	}
	date := calendar.DateOf(checkIn, s.location)
	if err := s.listener.SessionChanged(ctx, employeeID, date); err != nil {
		s.logger.WarnContext(ctx, "activity listener failed",
			"employee_id", employeeID,
			"date", date,
			"error", err,
			"request_id", requestID,
		)
	}
}
