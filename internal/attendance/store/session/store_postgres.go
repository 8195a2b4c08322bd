package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fieldtrack/internal/attendance/models"
	"fieldtrack/internal/platform/postgres"
	"fieldtrack/pkg/platform/sentinel"
)

const openSessionIndex = "uq_attendance_sessions_open"

// Columns selects a session aliased as s, in Fields order.
const Columns = `
	s.id, s.employee_id, s.client_id, s.checkin_time, s.checkout_time,
	s.latitude, s.longitude, s.distance_from_client::float8, s.notes, s.status`

// PostgresStore persists attendance sessions in PostgreSQL. The partial
// unique index on open sessions enforces one open session per employee.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed session store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateIfNoneOpen inserts the session. A concurrent open session surfaces as
// sentinel.ErrConflict through the partial unique index.
func (s *PostgresStore) CreateIfNoneOpen(ctx context.Context, session *models.Session) (*models.Session, error) {
	query := `
		INSERT INTO attendance_sessions AS s
			(employee_id, client_id, checkin_time, latitude, longitude, distance_from_client, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'checked_in')
		RETURNING ` + Columns
	created, err := scanSession(postgres.Conn(ctx, s.db).QueryRowContext(ctx, query,
		session.EmployeeID,
		session.ClientID,
		session.CheckInTime,
		session.Latitude,
		session.Longitude,
		session.DistanceKm,
		session.Notes,
	))
	if err != nil {
		if postgres.IsUniqueViolation(err, openSessionIndex) {
			return nil, sentinel.ErrConflict
		}
		if postgres.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("create session: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("create session: %w", err)
	}
	return created, nil
}

// CloseOpen checks out the employee's open session. The checkout time is
// clamped so it never precedes the check-in.
func (s *PostgresStore) CloseOpen(ctx context.Context, employeeID int64, at time.Time) (*models.Session, error) {
	query := `
		UPDATE attendance_sessions AS s
		SET checkout_time = GREATEST(s.checkin_time, $2), status = 'checked_out'
		WHERE s.employee_id = $1 AND s.status = 'checked_in'
		RETURNING ` + Columns
	closed, err := scanSession(postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, employeeID, at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("close session: %w", err)
	}
	return closed, nil
}

func (s *PostgresStore) FindOpen(ctx context.Context, employeeID int64) (*models.HistoryEntry, error) {
	query := `
		SELECT ` + Columns + `, c.name, c.address
		FROM attendance_sessions s
		JOIN clients c ON c.id = s.client_id
		WHERE s.employee_id = $1 AND s.status = 'checked_in'`
	entry, err := scanHistoryEntry(postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find open session: %w", err)
	}
	return entry, nil
}

// ListHistory returns sessions checked in within [from, to), newest first.
// Zero bounds are open.
func (s *PostgresStore) ListHistory(ctx context.Context, employeeID int64, from, to time.Time) ([]models.HistoryEntry, error) {
	query := `
		SELECT ` + Columns + `, c.name, c.address
		FROM attendance_sessions s
		JOIN clients c ON c.id = s.client_id
		WHERE s.employee_id = $1
		  AND ($2::timestamptz IS NULL OR s.checkin_time >= $2)
		  AND ($3::timestamptz IS NULL OR s.checkin_time < $3)
		ORDER BY s.checkin_time DESC, s.id DESC`
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, employeeID, nullTime(from), nullTime(to))
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func scanSession(row rowScanner) (*models.Session, error) {
	var session models.Session
	if err := row.Scan(Fields(&session)...); err != nil {
		return nil, err
	}
	return &session, nil
}

func scanHistoryEntry(row rowScanner) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	dest := append(Fields(&entry.Session), &entry.ClientName, &entry.ClientAddress)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Fields returns scan targets matching Columns.
func Fields(session *models.Session) []any {
	return []any{
		&session.ID,
		&session.EmployeeID,
		&session.ClientID,
		&session.CheckInTime,
		&session.CheckOutTime,
		&session.Latitude,
		&session.Longitude,
		&session.DistanceKm,
		&session.Notes,
		&session.Status,
	}
}
