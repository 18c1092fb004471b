package main

import (
	"errors"
	"flag"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"quizitup/internal/config"
	"quizitup/internal/db"
	"quizitup/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "roll back all migrations")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	source, err := iofs.New(db.Migrations, "migrations/"+cfg.DatabaseDriver)
	if err != nil {
		log.Fatal().Err(err).Msg("migration source failed")
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("migration setup failed")
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	log.Info().Str("driver", cfg.DatabaseDriver).Bool("down", *down).Msg("database migrations applied")
}

// databaseURL turns DATABASE_URL into the form golang-migrate expects.
// SQLite paths need the sqlite3 scheme.
func databaseURL(cfg config.Config) string {
	if cfg.DatabaseDriver != config.DriverSQLite {
		return cfg.DatabaseURL
	}
	dsn := strings.TrimPrefix(cfg.DatabaseURL, "file:")
	return "sqlite3://" + dsn
}
