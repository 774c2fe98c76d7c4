package discord

import (
	"fmt"
	"strconv"
)

// ParseSnowflake converts a Discord id to an int64. The empty string is 0.
func ParseSnowflake(id string) (int64, error) {
	if id == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid snowflake %q", id)
	}
	return n, nil
}

func FormatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}
