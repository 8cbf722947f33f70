package engine

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no time component, held as ISO YYYY-MM-DD.
// The zero value means "absent". Transitions take the current Date as an
// explicit parameter; the engine never reads the clock itself.
type Date string

// Today converts a wall-clock instant to its calendar day.
func Today(now time.Time) Date {
	return Date(now.Format(dateLayout))
}

// ParseDate validates an ISO date string. Empty input maps to the zero
// Date, matching a record with no completions yet.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(t.Format(dateLayout)), nil
}

func (d Date) IsZero() bool {
	return d == ""
}

func (d Date) String() string {
	return string(d)
}

// AddDays returns the calendar day n days away. A zero Date stays zero.
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, n).Format(dateLayout))
}
