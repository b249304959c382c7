package common

import (
	"fmt"
	"time"

	"infinite-experiment/logbook/internal/constants"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// FormatTimestamp renders a flight timestamp the way pilots see it
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampLayout)
}

// OrDefault returns value unless it is blank
func OrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
