package application

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"schedbot/internal/domain"
	"schedbot/internal/domain/entities"
	"schedbot/internal/ports/input"
	"schedbot/internal/ports/output"
)

var _ input.ScheduleUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo output.EventRepository
	metrics   output.Metrics
	loc       *time.Location
	log       zerolog.Logger
}

// NewEventService creates the schedule use case. loc is the reference timezone
// applied to times given without an offset; nil means UTC.
func NewEventService(
	eventRepo output.EventRepository,
	metrics output.Metrics,
	loc *time.Location,
	log zerolog.Logger,
) *EventService {
	if loc == nil {
		loc = time.UTC
	}
	return &EventService{
		eventRepo: eventRepo,
		metrics:   metrics,
		loc:       loc,
		log:       log.With().Str("component", "schedule").Logger(),
	}
}

// ScheduleEvent validates the request and stores the event. Validation failures
// are domain.KindValidation errors and leave the store untouched.
func (s *EventService) ScheduleEvent(ctx context.Context, req input.ScheduleRequest) (*entities.Event, error) {
	event, err := s.validate(req)
	if err != nil {
		s.metrics.ScheduleRejected(domain.Code(err))
		return nil, err
	}
	if err := s.eventRepo.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("schedule event: %w", err)
	}
	s.metrics.EventScheduled()
	s.log.Info().
		Int64("event_id", event.ID).
		Int64("guild_id", event.GuildID).
		Int64("channel_id", event.ChannelID).
		Str("event_time", entities.FormatEventTime(event.EventTime)).
		Msg("event scheduled")
	return event, nil
}

func (s *EventService) validate(req input.ScheduleRequest) (*entities.Event, error) {
	if req.GuildID == 0 {
		return nil, domain.Validation("not_in_guild", domain.ErrNotInGuild)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, domain.Validation("missing_description", domain.ErrMissingDescription)
	}
	if n := utf8.RuneCountInString(description); n > entities.MaxDescriptionLength {
		return nil, domain.Validation("description_too_long",
			fmt.Errorf("%w: %d runes, max %d", domain.ErrDescriptionTooLong, n, entities.MaxDescriptionLength))
	}
	at, err := entities.ParseScheduleDateTime(req.Date, req.Time, s.loc)
	if err != nil {
		return nil, err
	}
	return &entities.Event{
		GuildID:     req.GuildID,
		ChannelID:   req.ChannelID,
		EventTime:   at,
		Description: description,
	}, nil
}
