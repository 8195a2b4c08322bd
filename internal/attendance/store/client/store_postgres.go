package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fieldtrack/internal/attendance/models"
	"fieldtrack/internal/platform/postgres"
	"fieldtrack/pkg/platform/sentinel"
)

// PostgresStore reads clients from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `
		SELECT id, name, address, latitude, longitude
		FROM clients
		WHERE id = $1`
	var c models.Client
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.Latitude, &c.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return &c, nil
}

// Create inserts a client and sets its ID.
func (s *PostgresStore) Create(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (name, address, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, c.Name, c.Address, c.Latitude, c.Longitude).Scan(&c.ID); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}
