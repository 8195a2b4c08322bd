package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fieldtrack/internal/reporting/models"
	"fieldtrack/pkg/platform/circuit"
	"fieldtrack/pkg/platform/sentinel"
)

// SummaryBackend is the cache a Guarded wraps.
type SummaryBackend interface {
	Lookup(ctx context.Context, key models.SummaryKey) (*models.DailySummary, string, error)
	Store(ctx context.Context, key models.SummaryKey, generation string, summary *models.DailySummary) error
	SessionChanged(ctx context.Context, employeeID int64, date string) error
}

// Guarded stops calling an unavailable backend for reads and writes of
// summaries until its breaker lets a probe through. Generation bumps are
// always attempted so a recovered cache never serves a summary older than
// the last check-in.
type Guarded struct {
	backend SummaryBackend
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(backend SummaryBackend, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	return &Guarded{backend: backend, breaker: breaker, logger: logger}
}

func (g *Guarded) Lookup(ctx context.Context, key models.SummaryKey) (*models.DailySummary, string, error) {
	if !g.breaker.Allow() {
		return nil, "", g.openErr()
	}
	summary, generation, err := g.backend.Lookup(ctx, key)
	g.record(ctx, err)
	return summary, generation, err
}

func (g *Guarded) Store(ctx context.Context, key models.SummaryKey, generation string, summary *models.DailySummary) error {
	if !g.breaker.Allow() {
		return g.openErr()
	}
	err := g.backend.Store(ctx, key, generation, summary)
	g.record(ctx, err)
	return err
}

func (g *Guarded) SessionChanged(ctx context.Context, employeeID int64, date string) error {
	err := g.backend.SessionChanged(ctx, employeeID, date)
	g.record(ctx, err)
	return err
}

// record counts only availability failures; decode errors say nothing about
// the backend's health.
func (g *Guarded) record(ctx context.Context, err error) {
	var change circuit.StateChange
	switch {
	case err == nil:
		_, change = g.breaker.RecordSuccess()
	case errors.Is(err, sentinel.ErrUnavailable):
		_, change = g.breaker.RecordFailure()
	default:
		return
	}

	if change.Opened {
		g.logger.WarnContext(ctx, "cache.circuit_opened", "breaker", g.breaker.Name(), "error", err)
	}
	if change.Closed {
		g.logger.InfoContext(ctx, "cache.circuit_closed", "breaker", g.breaker.Name())
	}
}

func (g *Guarded) openErr() error {
	return fmt.Errorf("summary cache %s circuit open: %w", g.breaker.Name(), sentinel.ErrUnavailable)
}
