package series

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the combined date/time layout of a [Sample], interpreted as UTC.
const TimestampLayout = "2006/01/02 15:04"

// Sample is one raw water-level record.
//
// Only the combined timestamp and Verified are used to build a [Series];
// Predicted is carried for completeness.
type Sample struct {
	Date      string  // YYYY/MM/DD
	Time      string  // HH:MM, GMT
	Predicted float64 // metres
	Verified  float64 // metres
}

// Timestamp parses Date and Time as a UTC instant.
func (s Sample) Timestamp() (time.Time, error) {
	raw := strings.TrimSpace(s.Date) + " " + strings.TrimSpace(s.Time)
	ts, err := time.ParseInLocation(TimestampLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrMalformedTimestamp, raw, err)
	}
	return ts, nil
}
