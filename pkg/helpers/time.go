package helpers

import (
	"fmt"
	"time"
)

// DisplayDateLayout is how dates appear in notification emails.
const DisplayDateLayout = "02/01/2006"

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD) as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
