package service

import (
	"context"
	"math"
	"time"

	"fieldtrack/internal/reporting/models"
	"fieldtrack/pkg/calendar"
	dErrors "fieldtrack/pkg/domain-errors"
	"fieldtrack/pkg/requestcontext"
)

const weekWindow = 7 * 24 * time.Hour

// DailySummary reports each of the manager's employees for one date.
// A non-nil employeeID narrows the report to that employee; an employee
// outside the manager's team yields an empty list.
func (s *Service) DailySummary(ctx context.Context, managerID int64, date string, employeeID *int64) (summary *models.DailySummary, err error) {
	ctx, end := s.startSpan(ctx, "daily_summary", managerID)
	defer func() { end(err) }()

	from, to, err := calendar.Day(date, s.location)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}

	key := models.SummaryKey{ManagerID: managerID, Date: date, EmployeeID: employeeID}
	cached, generation, cacheable := s.lookupSummary(ctx, key)
	if cached != nil {
		return cached, nil
	}

	rows, err := s.store.DailyEmployeeStats(ctx, managerID, employeeID, from, to)
	if err != nil {
		s.logger.ErrorContext(ctx, "daily summary query failed",
			"manager_id", managerID,
			"date", date,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate daily summary")
	}

	summary = buildDailySummary(date, rows)
	if cacheable {
		s.storeSummary(ctx, key, generation, summary)
	}
	return summary, nil
}

// WeeklyStats counts the employee's check-ins over the trailing seven days.
func (s *Service) WeeklyStats(ctx context.Context, employeeID int64) (stats *models.WeeklyStats, err error) {
	ctx, end := s.startSpan(ctx, "weekly_stats", employeeID)
	defer func() { end(err) }()

	stats, err = s.store.WeeklyStats(ctx, employeeID, requestcontext.Now(ctx).Add(-weekWindow))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load weekly stats")
	}
	return stats, nil
}

func buildDailySummary(date string, rows []models.EmployeeDaySummary) *models.DailySummary {
	summary := &models.DailySummary{
		Date:      date,
		Employees: make([]models.EmployeeDaySummary, 0, len(rows)),
	}
	var hours float64
	for _, row := range rows {
		row.WorkingHours = round2(row.WorkingHours)
		summary.Team.TotalCheckins += row.TotalCheckins
		summary.Team.TotalClientsVisited += row.ClientsVisited
		hours += row.WorkingHours
		summary.Employees = append(summary.Employees, row)
	}
	summary.Team.TotalWorkingHours = round2(hours)
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// lookupSummary returns a cached summary, or nil and the generation to store
// under, and whether a freshly built summary may be stored. Cache failures
// are logged and are never followed by a store.
func (s *Service) lookupSummary(ctx context.Context, key models.SummaryKey) (*models.DailySummary, string, bool) {
	if s.cache == nil {
		return nil, "", false
	}
	cached, generation, err := s.cache.Lookup(ctx, key)
	if err != nil {
		s.metrics.IncrementCacheErrors()
		s.logger.WarnContext(ctx, "summary cache lookup failed",
			"date", key.Date,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, "", false
	}
	s.metrics.RecordCacheLookup(cached != nil)
	return cached, generation, true
}

func (s *Service) storeSummary(ctx context.Context, key models.SummaryKey, generation string, summary *models.DailySummary) {
	if err := s.cache.Store(ctx, key, generation, summary); err != nil {
		s.metrics.IncrementCacheErrors()
		s.logger.WarnContext(ctx, "summary cache store failed",
			"date", key.Date,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}
