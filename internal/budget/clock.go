package budget

import "time"

// DateFormat is the calendar-date layout used for record dates and the
// day-boundary marker.
const DateFormat = "2006-01-02"

// Clock supplies the current time and calendar date. The core never reads
// the wall clock directly, so tests can drive day boundaries explicitly.
type Clock interface {
	Now() time.Time
	Today() string
	Weekday() time.Weekday
}

// SystemClock is the production Clock backed by the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Today() string         { return time.Now().Format(DateFormat) }
func (SystemClock) Weekday() time.Weekday { return time.Now().Weekday() }
