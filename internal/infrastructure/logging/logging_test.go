package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		" WARN ":   zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.InfoLevel,
		"chatty":   zerolog.InfoLevel,
		"trace":    zerolog.TraceLevel,
		"disabled": zerolog.Disabled,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNewJSONWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", "json", &buf)
	log.Debug().Msg("hidden")
	log.Info().Int64("event_id", 7).Msg("event scheduled")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug filtered): %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if entry["message"] != "event scheduled" || entry["event_id"] != float64(7) || entry["level"] != "info" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNewConsoleIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "console", &buf)
	log.Info().Str("component", "scheduler").Msg("scheduler started")
	out := buf.String()
	if !strings.Contains(out, "scheduler started") || !strings.Contains(out, "component=") || !strings.Contains(out, "scheduler") {
		t.Fatalf("console output = %q", out)
	}
}
