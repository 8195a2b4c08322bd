package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"fieldtrack/internal/attendance/assignment"
	attendanceservice "fieldtrack/internal/attendance/service"
	assignmentstore "fieldtrack/internal/attendance/store/assignment"
	clientstore "fieldtrack/internal/attendance/store/client"
	sessionstore "fieldtrack/internal/attendance/store/session"
	authservice "fieldtrack/internal/auth/service"
	accountstore "fieldtrack/internal/auth/store/account"
	"fieldtrack/internal/platform/config"
	"fieldtrack/internal/platform/postgres"
	reportingservice "fieldtrack/internal/reporting/service"
	reportingstore "fieldtrack/internal/reporting/store"
	"fieldtrack/internal/seed"
	"fieldtrack/internal/storage"
)

// stores is the storage backend chosen at startup.
type stores struct {
	sessions    attendanceservice.SessionStore
	clients     attendanceservice.ClientStore
	assignments assignment.Store
	accounts    authservice.AccountStore
	reports     reportingservice.Store
	// db is nil for the in-memory backend.
	db *sql.DB
}

// openStores connects to Postgres when DATABASE_URL is set. Otherwise it
// returns the in-memory backend loaded with the demo dataset.
func openStores(ctx context.Context, cfg config.Database, log *slog.Logger) (*stores, error) {
	if cfg.URL == "" {
		data := storage.NewInMemory()
		if err := data.Load(seed.Default(), bcrypt.DefaultCost); err != nil {
			return nil, fmt.Errorf("load demo data: %w", err)
		}
		log.WarnContext(ctx, "DATABASE_URL is empty, using in-memory storage with demo data")
		return &stores{
			sessions:    data.Sessions(),
			clients:     data.Clients(),
			assignments: data.Assignments(),
			accounts:    data.Accounts(),
			reports:     data.Reports(),
		}, nil
	}

	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.InfoContext(ctx, "database schema applied")
	}
	return &stores{
		sessions:    sessionstore.NewPostgres(db),
		clients:     clientstore.NewPostgres(db),
		assignments: assignmentstore.NewPostgres(db),
		accounts:    accountstore.NewPostgres(db),
		reports:     reportingstore.NewPostgres(db),
		db:          db,
	}, nil
}

func (s *stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
