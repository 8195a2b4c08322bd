package seed

import (
	"context"
	"database/sql"
	"fmt"

	"fieldtrack/internal/platform/postgres"
)

// ApplyPostgres replaces every row in the attendance tables with ds in one
// transaction. Explicit IDs are kept and sequences moved past them.
func ApplyPostgres(ctx context.Context, db *sql.DB, ds Dataset, cost int) error {
	accounts, err := ds.Accounts(cost)
	if err != nil {
		return fmt.Errorf("hash seed passwords: %w", err)
	}

	return postgres.RunInTx(ctx, db, func(ctx context.Context) error {
		q := postgres.Conn(ctx, db)

		if _, err := q.ExecContext(ctx, `TRUNCATE attendance_sessions, employee_clients, clients, employees RESTART IDENTITY CASCADE`); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		for _, a := range accounts {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO employees (id, name, email, password_hash, role, manager_id)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				a.ID, a.Name, a.Email, a.PasswordHash, string(a.Role), a.ManagerID,
			); err != nil {
				return fmt.Errorf("insert employee %d: %w", a.ID, err)
			}
		}

		for _, c := range ds.Clients {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO clients (id, name, address, latitude, longitude)
				VALUES ($1, $2, $3, $4, $5)`,
				c.ID, c.Name, c.Address, c.Latitude, c.Longitude,
			); err != nil {
				return fmt.Errorf("insert client %d: %w", c.ID, err)
			}
		}

		for _, a := range ds.Assignments {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO employee_clients (employee_id, client_id, assigned_date)
				VALUES ($1, $2, $3)`,
				a.EmployeeID, a.ClientID, a.AssignedDate,
			); err != nil {
				return fmt.Errorf("insert assignment %d/%d: %w", a.EmployeeID, a.ClientID, err)
			}
		}

		for _, s := range ds.Sessions {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO attendance_sessions
					(id, employee_id, client_id, checkin_time, checkout_time, latitude, longitude, distance_from_client, notes, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				s.ID, s.EmployeeID, s.ClientID, s.CheckInTime, s.CheckOutTime,
				s.Latitude, s.Longitude, s.DistanceKm, s.Notes, string(s.Status),
			); err != nil {
				return fmt.Errorf("insert session %d: %w", s.ID, err)
			}
		}

		for _, table := range []string{"employees", "clients", "employee_clients", "attendance_sessions"} {
			if _, err := q.ExecContext(ctx, fmt.Sprintf(
				`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`, table,
			)); err != nil {
				return fmt.Errorf("reset %s sequence: %w", table, err)
			}
		}
		return nil
	})
}
