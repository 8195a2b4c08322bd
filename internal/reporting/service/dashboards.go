package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	attendance "fieldtrack/internal/attendance/models"
	"fieldtrack/internal/reporting/models"
	"fieldtrack/pkg/calendar"
	dErrors "fieldtrack/pkg/domain-errors"
	"fieldtrack/pkg/requestcontext"
)

// TeamDashboard returns the manager's team, today's team check-ins, and how
// many team members are checked in right now.
func (s *Service) TeamDashboard(ctx context.Context, managerID int64) (dashboard *models.TeamDashboard, err error) {
	ctx, end := s.startSpan(ctx, "team_dashboard", managerID)
	defer func() { end(err) }()

	members, err := s.store.TeamMembers(ctx, managerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch dashboard stats")
	}
	memberIDs := make([]int64, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}
	from, to := s.today(ctx)

	dashboard = &models.TeamDashboard{
		TeamSize:      len(members),
		TeamMembers:   members,
		TodayCheckins: []models.TeamCheckin{},
	}
	if len(memberIDs) == 0 {
		return dashboard, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		checkins, err := s.store.TeamCheckins(gctx, memberIDs, from, to)
		if err != nil {
			return err
		}
		dashboard.TodayCheckins = checkins
		return nil
	})
	g.Go(func() error {
		active, err := s.store.CountOpenSessions(gctx, memberIDs)
		if err != nil {
			return err
		}
		dashboard.ActiveCheckins = active
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch dashboard stats")
	}
	if dashboard.TodayCheckins == nil {
		dashboard.TodayCheckins = []models.TeamCheckin{}
	}
	return dashboard, nil
}

// EmployeeDashboard returns the employee's check-ins today, assigned
// clients, and trailing week stats.
func (s *Service) EmployeeDashboard(ctx context.Context, employeeID int64) (dashboard *models.EmployeeDashboard, err error) {
	ctx, end := s.startSpan(ctx, "employee_dashboard", employeeID)
	defer func() { end(err) }()

	from, to := s.today(ctx)
	var (
		checkins []attendance.HistoryEntry
		clients  []attendance.Client
		week     *models.WeeklyStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		checkins, err = s.store.EmployeeCheckins(gctx, employeeID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = s.clients.AssignedClients(gctx, employeeID)
		return err
	})
	g.Go(func() error {
		var err error
		week, err = s.store.WeeklyStats(gctx, employeeID, requestcontext.Now(gctx).Add(-weekWindow))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch dashboard")
	}

	dashboard = &models.EmployeeDashboard{
		TodayCheckins:   checkins,
		AssignedClients: clients,
	}
	if dashboard.TodayCheckins == nil {
		dashboard.TodayCheckins = []attendance.HistoryEntry{}
	}
	if dashboard.AssignedClients == nil {
		dashboard.AssignedClients = []attendance.Client{}
	}
	if week != nil {
		dashboard.WeekStats = *week
	}
	return dashboard, nil
}

// today returns the current calendar day in the service location.
func (s *Service) today(ctx context.Context) (from, to time.Time) {
	start := calendar.StartOfDay(requestcontext.Now(ctx), s.location)
	return start, start.AddDate(0, 0, 1)
}
