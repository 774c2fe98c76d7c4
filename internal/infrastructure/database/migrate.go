package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending migrations for the database behind dsn.
func RunMigrations(dsn string, log zerolog.Logger) error {
	dialect, path, err := ParseDSN(dsn)
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	dbURL := dsn
	if dialect == DialectSQLite {
		dbURL = "sqlite://" + path
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	logVersion(log.With().Str("dialect", string(dialect)).Logger(), m)
	return nil
}

type versioner interface {
	Version() (version uint, dirty bool, err error)
}

// logVersion reports the schema version reached. A version read failure is
// logged on its own and never reported as version 0.
func logVersion(log zerolog.Logger, v versioner) {
	version, dirty, err := v.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info().Msg("migrations applied, no version recorded")
	case err != nil:
		log.Warn().Err(err).Msg("migrations applied, schema version unreadable")
	default:
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
	}
}
