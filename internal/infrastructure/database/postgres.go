package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"schedbot/internal/domain"
	"schedbot/internal/domain/entities"
	"schedbot/internal/ports/output"
)

var _ output.EventRepository = (*PostgresEventRepository)(nil)

// PostgresEventRepository implements output.EventRepository on a pgx pool.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

func (r *PostgresEventRepository) Insert(ctx context.Context, event *entities.Event) error {
	rec := event.Record()
	err := r.pool.QueryRow(ctx, pgInsertEvent,
		rec.GuildID, rec.ChannelID, rec.EventTime, rec.Description,
	).Scan(&event.ID)
	if err != nil {
		return domain.Storage("insert event", err)
	}
	return nil
}

func (r *PostgresEventRepository) ScanAll(ctx context.Context) ([]entities.EventRecord, error) {
	rows, err := r.pool.Query(ctx, queryScanEvents)
	if err != nil {
		return nil, domain.Storage("scan events", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entities.EventRecord])
	if err != nil {
		return nil, domain.Storage("scan events", err)
	}
	return out, nil
}

func (r *PostgresEventRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, pgDeleteEvent, id); err != nil {
		return domain.Storage("delete event", err)
	}
	return nil
}
