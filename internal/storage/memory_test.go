package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	attendance "fieldtrack/internal/attendance/models"
	"fieldtrack/internal/seed"
	"fieldtrack/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	mem *InMemory
	ctx context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.mem = NewInMemory()
	s.Require().NoError(s.mem.Load(seed.Default(), bcrypt.MinCost))
	s.ctx = context.Background()
}

func (s *InMemorySuite) newSession(employeeID, clientID int64, at time.Time) *attendance.Session {
	return &attendance.Session{EmployeeID: employeeID, ClientID: clientID, CheckInTime: at}
}

func (s *InMemorySuite) TestCreateIfNoneOpen() {
	now := time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)

	s.Run("rejects second open session", func() {
		// employee 2 still has the seeded open session from 2024-01-16
		_, err := s.mem.Sessions().CreateIfNoneOpen(s.ctx, s.newSession(2, 2, now))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("creates open session with next id", func() {
		created, err := s.mem.Sessions().CreateIfNoneOpen(s.ctx, s.newSession(3, 2, now))
		s.Require().NoError(err)
		s.Equal(int64(7), created.ID)
		s.Equal(attendance.StatusCheckedIn, created.Status)
		s.Nil(created.CheckOutTime)
	})

	s.Run("unknown client", func() {
		_, err := s.mem.Sessions().CreateIfNoneOpen(s.ctx, s.newSession(4, 99, now))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemorySuite) TestConcurrentCreateExactlyOneSucceeds() {
	const goroutines = 20
	now := time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	var successes, conflicts atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.mem.Sessions().CreateIfNoneOpen(s.ctx, s.newSession(4, 1, now))
			switch {
			case err == nil:
				successes.Add(1)
			case err == sentinel.ErrConflict:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}

func (s *InMemorySuite) TestCloseOpen() {
	s.Run("closes the open session", func() {
		at := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
		closed, err := s.mem.Sessions().CloseOpen(s.ctx, 2, at)
		s.Require().NoError(err)
		s.Equal(int64(6), closed.ID)
		s.Equal(attendance.StatusCheckedOut, closed.Status)
		s.Require().NotNil(closed.CheckOutTime)
		s.True(closed.CheckOutTime.Equal(at))
	})

	s.Run("second close finds nothing", func() {
		_, err := s.mem.Sessions().CloseOpen(s.ctx, 2, time.Now())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("checkout is clamped to check-in", func() {
		in := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
		_, err := s.mem.Sessions().CreateIfNoneOpen(s.ctx, s.newSession(3, 4, in))
		s.Require().NoError(err)

		closed, err := s.mem.Sessions().CloseOpen(s.ctx, 3, in.Add(-time.Minute))
		s.Require().NoError(err)
		s.True(closed.CheckOutTime.Equal(in))
	})
}

func (s *InMemorySuite) TestListHistory() {
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	entries, err := s.mem.Sessions().ListHistory(s.ctx, 2, from, to)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("Tech Solutions", entries[0].ClientName)
	s.Equal("ABC Corp", entries[2].ClientName)

	all, err := s.mem.Sessions().ListHistory(s.ctx, 2, time.Time{}, time.Time{})
	s.Require().NoError(err)
	s.Len(all, 4)
}

func (s *InMemorySuite) TestDailyEmployeeStats() {
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	rows, err := s.mem.Reports().DailyEmployeeStats(s.ctx, 1, nil, from, from.AddDate(0, 0, 1))
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	s.Equal("Priya Singh", rows[0].EmployeeName)
	s.Equal(2, rows[0].TotalCheckins)
	s.InDelta(5.5, rows[0].WorkingHours, 1e-9)

	s.Equal("Rahul Kumar", rows[1].EmployeeName)
	s.Equal(3, rows[1].TotalCheckins)
	s.Equal(3, rows[1].ClientsVisited)
	s.InDelta(6.75, rows[1].WorkingHours, 1e-9)

	s.Equal("Vikram Patel", rows[2].EmployeeName)
	s.Zero(rows[2].TotalCheckins)
}
