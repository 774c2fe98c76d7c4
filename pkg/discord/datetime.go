package discord

import (
	"fmt"
	"time"

	"schedbot/internal/domain/entities"
)

// FormatEventDateTime renders t as its stored ISO-8601 form followed by a Discord
// relative timestamp, which each client shows in the reader's own timezone.
func FormatEventDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (<t:%d:R>)", entities.FormatEventTime(t), t.Unix())
}
