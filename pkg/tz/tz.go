package tz

import (
	"strings"
	"time"
)

// Load resolves an IANA zone name. "", "UTC" and "Z" resolve to time.UTC without
// touching the zoneinfo database.
func Load(name string) (*time.Location, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "UTC", "Z":
		return time.UTC, nil
	}
	return time.LoadLocation(strings.TrimSpace(name))
}
