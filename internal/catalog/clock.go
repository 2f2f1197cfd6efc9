package catalog

import "time"

// Clock supplies the timestamp recorded for a run and its observations.
// Injectable so tests can pin time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock. Timestamps are stored in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
