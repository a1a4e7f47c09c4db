package clock

import "time"

// DateLayout is the ISO calendar date form used as the record key.
const DateLayout = "2006-01-02"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

// Today returns the local calendar date of c.Now().
func Today(c Clock) string {
	return c.Now().In(time.Local).Format(DateLayout)
}

// ParseDate parses an ISO calendar date, rejecting anything that does not
// round-trip (e.g. "2025-1-5" or "2025-02-30").
func ParseDate(value string) (time.Time, bool) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, parsed.Format(DateLayout) == value
}
