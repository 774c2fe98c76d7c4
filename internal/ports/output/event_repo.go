package output

import (
	"context"

	"schedbot/internal/domain/entities"
)

// EventRepository is the durable store of pending reminders.
// Implementations wrap failures as domain.KindStorage errors.
type EventRepository interface {
	// Insert persists the event and sets its ID before returning.
	Insert(ctx context.Context, event *entities.Event) error
	// ScanAll returns a point-in-time snapshot of every stored row.
	ScanAll(ctx context.Context) ([]entities.EventRecord, error)
	// Delete removes the event. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id int64) error
}
