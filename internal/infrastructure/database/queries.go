package database

// Postgres placeholders are $n; SQLite uses ?.
const (
	queryScanEvents = `SELECT id, guild_id, channel_id, event_time, description FROM events ORDER BY id`

	pgInsertEvent = `INSERT INTO events (guild_id, channel_id, event_time, description)
VALUES ($1, $2, $3, $4)
RETURNING id`
	pgDeleteEvent = `DELETE FROM events WHERE id = $1`

	sqliteInsertEvent = `INSERT INTO events (guild_id, channel_id, event_time, description)
VALUES (?, ?, ?, ?)`
	sqliteDeleteEvent = `DELETE FROM events WHERE id = ?`
)
