package assignment

import (
	"context"
	"database/sql"
	"fmt"

	"fieldtrack/internal/attendance/models"
	"fieldtrack/internal/platform/postgres"
)

// PostgresStore reads employee-client assignments from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Exists(ctx context.Context, employeeID, clientID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM employee_clients
			WHERE employee_id = $1 AND client_id = $2
		)`
	var exists bool
	if err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, employeeID, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return exists, nil
}

// ListClients returns the employee's assigned clients ordered by id.
func (s *PostgresStore) ListClients(ctx context.Context, employeeID int64) ([]models.Client, error) {
	query := `
		SELECT c.id, c.name, c.address, c.latitude, c.longitude
		FROM clients c
		JOIN employee_clients ec ON ec.client_id = c.id
		WHERE ec.employee_id = $1
		ORDER BY c.id`
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list assigned clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

// Assign records an assignment; re-assigning is a no-op.
func (s *PostgresStore) Assign(ctx context.Context, a models.Assignment) error {
	query := `
		INSERT INTO employee_clients (employee_id, client_id, assigned_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, client_id) DO NOTHING`
	if _, err := postgres.Conn(ctx, s.db).ExecContext(ctx, query, a.EmployeeID, a.ClientID, a.AssignedDate); err != nil {
		return fmt.Errorf("assign client: %w", err)
	}
	return nil
}
