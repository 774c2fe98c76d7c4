package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"schedbot/internal/domain"
	"schedbot/internal/domain/entities"
	"schedbot/internal/ports/input"
	"schedbot/internal/ports/output"
)

var _ input.ReminderUseCase = (*ReminderService)(nil)

const reminderMessageKey = "reminder.due"

// ReminderService runs one pass of the reminder loop: scan, deliver what is due, purge.
// Delivery is at-most-once: an event is deleted after its single attempt whatever the outcome.
type ReminderService struct {
	eventRepo  output.EventRepository
	notifier   output.Notifier
	translator output.Translator
	metrics    output.Metrics
	locale     string
	log        zerolog.Logger
}

func NewReminderService(
	eventRepo output.EventRepository,
	notifier output.Notifier,
	translator output.Translator,
	metrics output.Metrics,
	locale string,
	log zerolog.Logger,
) *ReminderService {
	return &ReminderService{
		eventRepo:  eventRepo,
		notifier:   notifier,
		translator: translator,
		metrics:    metrics,
		locale:     locale,
		log:        log.With().Str("component", "reminders").Logger(),
	}
}

// ProcessDueEvents delivers and deletes every stored event due at now.
//
// A scan failure aborts the pass before anything is deleted. Each event is deleted
// right after its own delivery attempt, so a failed delete stops the pass and leaves
// the remaining events for the next one.
func (s *ReminderService) ProcessDueEvents(ctx context.Context, now time.Time) (report input.TickReport, err error) {
	started := time.Now()
	now = now.UTC()
	report = input.TickReport{RunID: uuid.NewString(), Now: now}
	log := s.log.With().Str("run_id", report.RunID).Logger()
	defer func() {
		s.metrics.TickCompleted(time.Since(started), report.Delivered, err)
	}()

	records, err := s.eventRepo.ScanAll(ctx)
	if err != nil {
		return report, fmt.Errorf("scan events: %w", err)
	}
	report.Scanned = len(records)

	for _, rec := range records {
		event, perr := rec.Event()
		if perr != nil {
			log.Warn().Err(perr).Int64("event_id", rec.ID).Msg("purging malformed event")
			if err := s.eventRepo.Delete(ctx, rec.ID); err != nil {
				return report, fmt.Errorf("purge malformed event %d: %w", rec.ID, err)
			}
			report.Purged++
			s.metrics.MalformedPurged()
			continue
		}

		if !event.IsDue(now) {
			report.Pending++
			continue
		}

		if derr := s.deliver(ctx, &event); derr != nil {
			report.Failed++
			s.metrics.DeliveryFailed(domain.Code(derr))
			log.Warn().Err(derr).
				Int64("event_id", event.ID).
				Int64("channel_id", event.ChannelID).
				Msg("reminder delivery failed, purging anyway")
		} else {
			report.Delivered++
			s.metrics.ReminderDelivered()
		}

		if err := s.eventRepo.Delete(ctx, event.ID); err != nil {
			return report, fmt.Errorf("delete event %d: %w", event.ID, err)
		}
	}

	s.metrics.PendingEvents(report.Pending)
	if report.Scanned > 0 {
		log.Debug().
			Int("scanned", report.Scanned).
			Int("delivered", report.Delivered).
			Int("failed", report.Failed).
			Int("purged", report.Purged).
			Int("pending", report.Pending).
			Msg("tick processed")
	}
	return report, nil
}

func (s *ReminderService) deliver(ctx context.Context, event *entities.Event) error {
	text := s.translator.T(s.locale, reminderMessageKey, map[string]any{
		"Description": event.Description,
	})
	if err := s.notifier.Notify(ctx, event.ChannelID, text); err != nil {
		return fmt.Errorf("notify channel %d: %w", event.ChannelID, err)
	}
	return nil
}
