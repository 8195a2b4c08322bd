package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	attendance "fieldtrack/internal/attendance/models"
	"fieldtrack/internal/attendance/store/session"
	"fieldtrack/internal/platform/postgres"
	"fieldtrack/internal/reporting/models"
)

// PostgresStore answers report queries with aggregate SQL over the
// attendance tables.
type PostgresStore struct {
	db       *sql.DB
	sessions *session.PostgresStore
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, sessions: session.NewPostgres(db)}
}

// DailyEmployeeStats left-joins the manager's employees with their sessions
// in [from, to) so employees without activity appear with zero values.
func (s *PostgresStore) DailyEmployeeStats(ctx context.Context, managerID int64, employeeID *int64, from, to time.Time) ([]models.EmployeeDaySummary, error) {
	query := `
		SELECT
			e.id,
			e.name,
			COUNT(s.id),
			COUNT(DISTINCT s.client_id),
			COALESCE(SUM(EXTRACT(EPOCH FROM (s.checkout_time - s.checkin_time)) / 3600.0)
				FILTER (WHERE s.checkout_time IS NOT NULL), 0)::float8
		FROM employees e
		LEFT JOIN attendance_sessions s
			ON s.employee_id = e.id
			AND s.checkin_time >= $2
			AND s.checkin_time < $3
		WHERE e.manager_id = $1
		  AND ($4::bigint IS NULL OR e.id = $4)
		GROUP BY e.id, e.name
		ORDER BY e.name, e.id`
	filter := sql.NullInt64{}
	if employeeID != nil {
		filter = sql.NullInt64{Int64: *employeeID, Valid: true}
	}
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, managerID, from, to, filter)
	if err != nil {
		return nil, fmt.Errorf("daily employee stats: %w", err)
	}
	defer rows.Close()

	result := []models.EmployeeDaySummary{}
	for rows.Next() {
		var row models.EmployeeDaySummary
		if err := rows.Scan(&row.EmployeeID, &row.EmployeeName, &row.TotalCheckins, &row.ClientsVisited, &row.WorkingHours); err != nil {
			return nil, fmt.Errorf("scan daily stats: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily stats: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) WeeklyStats(ctx context.Context, employeeID int64, since time.Time) (*models.WeeklyStats, error) {
	query := `
		SELECT COUNT(*), COUNT(DISTINCT client_id)
		FROM attendance_sessions
		WHERE employee_id = $1 AND checkin_time >= $2`
	var stats models.WeeklyStats
	if err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, employeeID, since).
		Scan(&stats.TotalCheckins, &stats.UniqueClients); err != nil {
		return nil, fmt.Errorf("weekly stats: %w", err)
	}
	return &stats, nil
}

// TeamMembers lists the manager's direct reports ordered by name.
func (s *PostgresStore) TeamMembers(ctx context.Context, managerID int64) ([]attendance.Employee, error) {
	query := `
		SELECT id, name, email, role, manager_id
		FROM employees
		WHERE manager_id = $1
		ORDER BY name, id`
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("team members: %w", err)
	}
	defer rows.Close()

	members := []attendance.Employee{}
	for rows.Next() {
		var e attendance.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.ManagerID); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team members: %w", err)
	}
	return members, nil
}

// TeamCheckins lists sessions of the given employees checked in within
// [from, to), newest first.
func (s *PostgresStore) TeamCheckins(ctx context.Context, memberIDs []int64, from, to time.Time) ([]models.TeamCheckin, error) {
	query := `
		SELECT ` + session.Columns + `, c.name, c.address, e.name
		FROM attendance_sessions s
		JOIN clients c ON c.id = s.client_id
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = ANY($1::bigint[])
		  AND s.checkin_time >= $2
		  AND s.checkin_time < $3
		ORDER BY s.checkin_time DESC, s.id DESC`
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, pq.Array(memberIDs), from, to)
	if err != nil {
		return nil, fmt.Errorf("team checkins: %w", err)
	}
	defer rows.Close()

	checkins := []models.TeamCheckin{}
	for rows.Next() {
		var tc models.TeamCheckin
		dest := append(session.Fields(&tc.Session), &tc.ClientName, &tc.ClientAddress, &tc.EmployeeName)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan team checkin: %w", err)
		}
		checkins = append(checkins, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team checkins: %w", err)
	}
	return checkins, nil
}

func (s *PostgresStore) CountOpenSessions(ctx context.Context, memberIDs []int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM attendance_sessions
		WHERE employee_id = ANY($1::bigint[]) AND status = 'checked_in'`
	var count int
	if err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, pq.Array(memberIDs)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count open sessions: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) EmployeeCheckins(ctx context.Context, employeeID int64, from, to time.Time) ([]attendance.HistoryEntry, error) {
	return s.sessions.ListHistory(ctx, employeeID, from, to)
}
