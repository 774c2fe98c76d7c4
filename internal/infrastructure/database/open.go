package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"schedbot/internal/ports/output"
)

// Store is an opened event store.
type Store struct {
	Dialect Dialect
	Events  output.EventRepository
	close   func()
}

// Close releases the underlying connections.
func (s *Store) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// Open connects to the database behind dsn and returns the matching repository.
// The schema is expected to exist already (see RunMigrations).
func Open(ctx context.Context, dsn string, log zerolog.Logger) (*Store, error) {
	dialect, path, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case DialectPostgres:
		pool, err := NewPool(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Info().Msg("✅ PostgreSQL database connected")
		return &Store{Dialect: dialect, Events: NewPostgresEventRepository(pool), close: pool.Close}, nil
	default:
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", path, err)
		}
		log.Info().Str("path", path).Msg("✅ SQLite database opened")
		return &Store{Dialect: dialect, Events: NewSQLiteEventRepository(db), close: func() { _ = db.Close() }}, nil
	}
}
