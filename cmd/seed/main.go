// Command seed resets the configured Postgres database to the demo dataset:
// one manager, three field employees, five clients, assignments and a few
// sessions. Every seeded account uses the same password.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"fieldtrack/internal/platform/config"
	"fieldtrack/internal/platform/logger"
	"fieldtrack/internal/platform/postgres"
	"fieldtrack/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	log := logger.New("info", "text")
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("database seeded", "password", seed.DefaultPassword)
}

func run(cfg config.Config) error {
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	return seed.ApplyPostgres(ctx, db, seed.Default(), bcrypt.DefaultCost)
}
