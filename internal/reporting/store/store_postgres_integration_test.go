//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fieldtrack/internal/reporting/store"
	"fieldtrack/internal/seed"
	"fieldtrack/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(seed.ApplyPostgres(context.Background(), s.postgres.DB, seed.Default(), 4))
}

var (
	jan15 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	jan16 = time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	jan17 = time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
)

func (s *PostgresStoreSuite) TestDailyEmployeeStats() {
	ctx := context.Background()

	s.Run("whole team including idle employees", func() {
		rows, err := s.store.DailyEmployeeStats(ctx, 1, nil, jan15, jan16)
		s.Require().NoError(err)
		s.Require().Len(rows, 3)

		s.Equal("Priya Singh", rows[0].EmployeeName)
		s.Equal(2, rows[0].TotalCheckins)
		s.Equal(2, rows[0].ClientsVisited)
		s.InDelta(5.5, rows[0].WorkingHours, 1e-9)

		s.Equal("Rahul Kumar", rows[1].EmployeeName)
		s.Equal(3, rows[1].TotalCheckins)
		s.Equal(3, rows[1].ClientsVisited)
		s.InDelta(6.75, rows[1].WorkingHours, 1e-9)

		s.Equal("Vikram Patel", rows[2].EmployeeName)
		s.Zero(rows[2].TotalCheckins)
		s.Zero(rows[2].WorkingHours)
	})

	s.Run("open sessions count but add no hours", func() {
		rows, err := s.store.DailyEmployeeStats(ctx, 1, nil, jan16, jan17)
		s.Require().NoError(err)
		s.Equal(1, rows[1].TotalCheckins)
		s.Zero(rows[1].WorkingHours)
	})

	s.Run("employee filter", func() {
		employeeID := int64(2)
		rows, err := s.store.DailyEmployeeStats(ctx, 1, &employeeID, jan15, jan16)
		s.Require().NoError(err)
		s.Require().Len(rows, 1)
		s.Equal(int64(2), rows[0].EmployeeID)
	})

	s.Run("employee outside the team", func() {
		employeeID := int64(1)
		rows, err := s.store.DailyEmployeeStats(ctx, 1, &employeeID, jan15, jan16)
		s.Require().NoError(err)
		s.Empty(rows)
	})
}

func (s *PostgresStoreSuite) TestWeeklyStats() {
	stats, err := s.store.WeeklyStats(context.Background(), 2, jan15.Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Equal(4, stats.TotalCheckins)
	s.Equal(3, stats.UniqueClients)
}

func (s *PostgresStoreSuite) TestTeamQueries() {
	ctx := context.Background()

	members, err := s.store.TeamMembers(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(members, 3)
	ids := []int64{members[0].ID, members[1].ID, members[2].ID}
	s.Equal([]int64{3, 2, 4}, ids)

	checkins, err := s.store.TeamCheckins(ctx, ids, jan15, jan16)
	s.Require().NoError(err)
	s.Require().Len(checkins, 5)
	s.Equal("Rahul Kumar", checkins[0].EmployeeName)
	s.Equal("Tech Solutions", checkins[0].ClientName)

	open, err := s.store.CountOpenSessions(ctx, ids)
	s.Require().NoError(err)
	s.Equal(1, open)

	entries, err := s.store.EmployeeCheckins(ctx, 2, jan16, jan17)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Nil(entries[0].CheckOutTime)
}
