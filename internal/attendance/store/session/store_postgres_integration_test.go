//go:build integration

package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fieldtrack/internal/attendance/models"
	"fieldtrack/internal/attendance/store/session"
	"fieldtrack/internal/platform/postgres"
	"fieldtrack/pkg/geo"
	"fieldtrack/pkg/platform/sentinel"
	"fieldtrack/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *session.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = session.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "attendance_sessions", "employee_clients", "clients", "employees"))

	_, err := s.postgres.Exec(ctx, `
		INSERT INTO employees (id, name, email, password_hash, role)
		VALUES (1, 'Rahul Kumar', 'rahul@example.com', 'x', 'employee'),
		       (2, 'Priya Singh', 'priya@example.com', 'x', 'employee')`)
	s.Require().NoError(err)
	_, err = s.postgres.Exec(ctx, `
		INSERT INTO clients (id, name, address, latitude, longitude)
		VALUES (1, 'ABC Corp', 'Cyber City, Gurugram', 28.4946, 77.0887)`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newSession(employeeID int64, at time.Time) *models.Session {
	notes := "visit"
	return &models.Session{
		EmployeeID:  employeeID,
		ClientID:    1,
		CheckInTime: at,
		Coordinate:  geo.Coordinate{Latitude: 28.4950, Longitude: 77.0890},
		DistanceKm:  0.05,
		Notes:       &notes,
		Status:      models.StatusCheckedIn,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFindOpen() {
	ctx := context.Background()
	at := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	created, err := s.store.CreateIfNoneOpen(ctx, s.newSession(1, at))
	s.Require().NoError(err)
	s.Positive(created.ID)
	s.Equal(models.StatusCheckedIn, created.Status)
	s.Nil(created.CheckOutTime)
	s.InDelta(0.05, created.DistanceKm, 1e-9)

	open, err := s.store.FindOpen(ctx, 1)
	s.Require().NoError(err)
	s.Equal(created.ID, open.ID)
	s.Equal("ABC Corp", open.ClientName)
	s.Equal("Cyber City, Gurugram", open.ClientAddress)
	s.True(open.CheckInTime.Equal(at))

	_, err = s.store.FindOpen(ctx, 2)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestCreateRejectsSecondOpenSession() {
	ctx := context.Background()
	at := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	_, err := s.store.CreateIfNoneOpen(ctx, s.newSession(1, at))
	s.Require().NoError(err)

	_, err = s.store.CreateIfNoneOpen(ctx, s.newSession(1, at.Add(time.Hour)))
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestCreateUnknownClient() {
	sess := s.newSession(1, time.Now())
	sess.ClientID = 99

	_, err := s.store.CreateIfNoneOpen(context.Background(), sess)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentCheckIn verifies that concurrent check-ins for one employee
// leave exactly one open session.
func (s *PostgresStoreSuite) TestConcurrentCheckIn() {
	ctx := context.Background()
	const goroutines = 20
	at := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.CreateIfNoneOpen(ctx, s.newSession(1, at))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrConflict) {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one check-in should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should conflict")

	var open int
	s.Require().NoError(s.postgres.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM attendance_sessions WHERE employee_id = 1 AND status = 'checked_in'`).Scan(&open))
	s.Equal(1, open)
}

func (s *PostgresStoreSuite) TestCloseOpen() {
	ctx := context.Background()
	at := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	s.Run("no open session", func() {
		_, err := s.store.CloseOpen(ctx, 1, at)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("closes and clamps to check-in time", func() {
		created, err := s.store.CreateIfNoneOpen(ctx, s.newSession(1, at))
		s.Require().NoError(err)

		closed, err := s.store.CloseOpen(ctx, 1, at.Add(-time.Minute))
		s.Require().NoError(err)
		s.Equal(created.ID, closed.ID)
		s.Equal(models.StatusCheckedOut, closed.Status)
		s.Require().NotNil(closed.CheckOutTime)
		s.True(closed.CheckOutTime.Equal(at))

		_, err = s.store.FindOpen(ctx, 1)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("second checkout finds nothing", func() {
		_, err := s.store.CloseOpen(ctx, 1, at.Add(time.Hour))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestListHistory() {
	ctx := context.Background()
	day1 := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{day1, day2} {
		_, err := s.store.CreateIfNoneOpen(ctx, s.newSession(1, at))
		s.Require().NoError(err)
		_, err = s.store.CloseOpen(ctx, 1, at.Add(2*time.Hour))
		s.Require().NoError(err)
	}

	s.Run("unbounded lists newest first", func() {
		entries, err := s.store.ListHistory(ctx, 1, time.Time{}, time.Time{})
		s.Require().NoError(err)
		s.Require().Len(entries, 2)
		s.True(entries[0].CheckInTime.Equal(day2))
		s.True(entries[1].CheckInTime.Equal(day1))
	})

	s.Run("half-open range", func() {
		entries, err := s.store.ListHistory(ctx, 1, day1.Truncate(24*time.Hour), day2.Truncate(24*time.Hour))
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.True(entries[0].CheckInTime.Equal(day1))
	})

	s.Run("other employee is empty", func() {
		entries, err := s.store.ListHistory(ctx, 2, time.Time{}, time.Time{})
		s.Require().NoError(err)
		s.NotNil(entries)
		s.Empty(entries)
	})
}

func (s *PostgresStoreSuite) TestCreateInsideTransaction() {
	ctx := context.Background()
	at := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	rollback := errors.New("rollback")

	err := postgres.RunInTx(ctx, s.postgres.DB, func(ctx context.Context) error {
		if _, err := s.store.CreateIfNoneOpen(ctx, s.newSession(1, at)); err != nil {
			return err
		}
		return rollback
	})
	s.ErrorIs(err, rollback)

	_, err = s.store.FindOpen(ctx, 1)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
