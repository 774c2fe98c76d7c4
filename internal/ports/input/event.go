package input

import (
	"context"
	"time"

	"schedbot/internal/domain/entities"
)

// ScheduleRequest carries the validated-by-shape arguments of a schedule command.
type ScheduleRequest struct {
	GuildID     int64
	ChannelID   int64
	Date        string
	Time        string
	Description string
}

type ScheduleUseCase interface {
	ScheduleEvent(ctx context.Context, req ScheduleRequest) (*entities.Event, error)
}

// TickReport summarises one pass of the reminder loop.
type TickReport struct {
	RunID     string
	Now       time.Time
	Scanned   int
	Delivered int
	Failed    int
	Purged    int
	Pending   int
}

type ReminderUseCase interface {
	ProcessDueEvents(ctx context.Context, now time.Time) (TickReport, error)
}
