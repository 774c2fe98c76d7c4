package database

import (
	"context"
	"database/sql"

	"schedbot/internal/domain"
	"schedbot/internal/domain/entities"
	"schedbot/internal/ports/output"
)

var _ output.EventRepository = (*SQLiteEventRepository)(nil)

// SQLiteEventRepository implements output.EventRepository on a single-connection
// SQLite database (see OpenSQLite).
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Insert(ctx context.Context, event *entities.Event) error {
	rec := event.Record()
	res, err := r.db.ExecContext(ctx, sqliteInsertEvent,
		rec.GuildID, rec.ChannelID, rec.EventTime, rec.Description)
	if err != nil {
		return domain.Storage("insert event", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Storage("insert event", err)
	}
	event.ID = id
	return nil
}

// ScanAll reads every row in one statement and closes the cursor before
// returning, so the connection is free for the deletes that follow.
func (r *SQLiteEventRepository) ScanAll(ctx context.Context) ([]entities.EventRecord, error) {
	rows, err := r.db.QueryContext(ctx, queryScanEvents)
	if err != nil {
		return nil, domain.Storage("scan events", err)
	}
	defer rows.Close()

	var out []entities.EventRecord
	for rows.Next() {
		var rec entities.EventRecord
		if err := rows.Scan(&rec.ID, &rec.GuildID, &rec.ChannelID, &rec.EventTime, &rec.Description); err != nil {
			return nil, domain.Storage("scan events", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("scan events", err)
	}
	return out, nil
}

func (r *SQLiteEventRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, sqliteDeleteEvent, id); err != nil {
		return domain.Storage("delete event", err)
	}
	return nil
}
