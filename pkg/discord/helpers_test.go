package discord

import (
	"errors"
	"testing"
	"time"

	"schedbot/internal/domain"
)

func TestMessageKey(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.Validation("invalid_datetime", domain.ErrInvalidDateTime), "schedule.invalid_datetime"},
		{domain.Validation("missing_description", domain.ErrMissingDescription), "schedule.missing_description"},
		{domain.Validation("description_too_long", domain.ErrDescriptionTooLong), "schedule.description_too_long"},
		{domain.Validation("not_in_guild", domain.ErrNotInGuild), "schedule.not_in_guild"},
		{domain.Validation("something_new", errors.New("x")), "schedule.failed"},
		{domain.Storage("insert event", errors.New("disk full")), "schedule.failed"},
		{errors.New("plain"), "schedule.failed"},
		{nil, "schedule.failed"},
	}
	for _, tc := range cases {
		if got := MessageKey(tc.err); got != tc.want {
			t.Fatalf("MessageKey(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestSnowflakes(t *testing.T) {
	n, err := ParseSnowflake("1200000000000000002")
	if err != nil || n != 1200000000000000002 {
		t.Fatalf("ParseSnowflake = %d, %v", n, err)
	}
	if FormatSnowflake(n) != "1200000000000000002" {
		t.Fatal("FormatSnowflake round trip")
	}
	if n, err := ParseSnowflake(""); err != nil || n != 0 {
		t.Fatalf("ParseSnowflake(\"\") = %d, %v", n, err)
	}
	for _, bad := range []string{"abc", "-5", "99999999999999999999"} {
		if _, err := ParseSnowflake(bad); err == nil {
			t.Fatalf("ParseSnowflake(%q) accepted", bad)
		}
	}
}

func TestFormatEventDateTime(t *testing.T) {
	at := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	if got := FormatEventDateTime(at); got != "2024-06-01T14:30:00+00:00 (<t:1717252200:R>)" {
		t.Fatalf("FormatEventDateTime = %q", got)
	}
	if FormatEventDateTime(time.Time{}) != "" {
		t.Fatal("zero time should format empty")
	}
}
