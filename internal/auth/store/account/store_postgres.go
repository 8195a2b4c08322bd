package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	attendance "fieldtrack/internal/attendance/models"
	"fieldtrack/internal/auth/models"
	"fieldtrack/internal/platform/postgres"
	"fieldtrack/pkg/platform/sentinel"
)

// PostgresStore reads employee accounts from the employees table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const accountColumns = `id, name, email, role, manager_id, password_hash`

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM employees WHERE lower(email) = lower($1)`
	return s.findOne(ctx, query, email)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM employees WHERE id = $1`
	return s.findOne(ctx, query, id)
}

// Create inserts an account and sets its ID. A duplicate email returns sentinel.ErrConflict.
func (s *PostgresStore) Create(ctx context.Context, a *models.Account) error {
	query := `
		INSERT INTO employees (name, email, role, manager_id, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var managerID sql.NullInt64
	if a.ManagerID != nil {
		managerID = sql.NullInt64{Int64: *a.ManagerID, Valid: true}
	}
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query,
		a.Name, a.Email, string(a.Role), managerID, a.PasswordHash,
	).Scan(&a.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	var (
		a         models.Account
		role      string
		managerID sql.NullInt64
	)
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, arg).
		Scan(&a.ID, &a.Name, &a.Email, &role, &managerID, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	a.Role = attendance.Role(role)
	if managerID.Valid {
		id := managerID.Int64
		a.ManagerID = &id
	}
	return &a, nil
}
