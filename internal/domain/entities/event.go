package entities

import (
	"fmt"
	"strings"
	"time"

	"schedbot/internal/domain"
)

// storedTimeLayout keeps the offset spelled out (+00:00) instead of "Z".
const storedTimeLayout = "2006-01-02T15:04:05-07:00"

// MaxDescriptionLength caps a description in runes so the longest message
// echoing it stays under Discord's 2000 character limit.
const MaxDescriptionLength = 1900

// Event is a one-time reminder scheduled for a channel.
type Event struct {
	ID          int64
	GuildID     int64
	ChannelID   int64
	EventTime   time.Time // always UTC
	Description string
}

// IsDue reports whether the event should fire at now. Equal instants are due.
func (e *Event) IsDue(now time.Time) bool {
	return !e.EventTime.After(now)
}

// Record converts the event to its stored form.
func (e *Event) Record() EventRecord {
	return EventRecord{
		ID:          e.ID,
		GuildID:     e.GuildID,
		ChannelID:   e.ChannelID,
		EventTime:   FormatEventTime(e.EventTime),
		Description: e.Description,
	}
}

// EventRecord is a stored row as read back from the event store.
// EventTime is kept raw so a corrupt row can be detected per event.
type EventRecord struct {
	ID          int64
	GuildID     int64
	ChannelID   int64
	EventTime   string
	Description string
}

// Event parses the record. The error is a domain.KindMalformedRecord error.
func (r EventRecord) Event() (Event, error) {
	t, err := ParseEventTime(r.EventTime)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:          r.ID,
		GuildID:     r.GuildID,
		ChannelID:   r.ChannelID,
		EventTime:   t,
		Description: r.Description,
	}, nil
}

// FormatEventTime renders t as ISO-8601 in UTC, e.g. 2030-01-01T00:00:00+00:00.
func FormatEventTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// Layouts carrying an explicit offset. A fractional second after the seconds
// field is accepted by time.Parse without being in the layout.
var offsetLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

// Layouts without an offset; they are read in the reference location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseISO(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseEventTime parses a stored event_time. Values without an offset are read as UTC.
func ParseEventTime(raw string) (time.Time, error) {
	t, ok := parseISO(strings.TrimSpace(raw), time.UTC)
	if !ok {
		return time.Time{}, domain.MalformedRecord("event_time",
			fmt.Errorf("%w: %q", domain.ErrMalformedEventTime, raw))
	}
	return t, nil
}

// ParseScheduleDateTime combines the date (YYYY-MM-DD) and time (HH:MM[:SS][offset])
// tokens of a schedule command. Without an explicit offset the time is read in loc.
// The result is normalised to UTC.
func ParseScheduleDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" || timeStr == "" {
		return time.Time{}, domain.Validation("invalid_datetime",
			fmt.Errorf("%w: date and time are required", domain.ErrInvalidDateTime))
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return time.Time{}, domain.Validation("invalid_datetime",
			fmt.Errorf("%w: date %q", domain.ErrInvalidDateTime, dateStr))
	}
	t, ok := parseISO(dateStr+" "+timeStr, loc)
	if !ok {
		return time.Time{}, domain.Validation("invalid_datetime",
			fmt.Errorf("%w: time %q", domain.ErrInvalidDateTime, timeStr))
	}
	return t, nil
}
