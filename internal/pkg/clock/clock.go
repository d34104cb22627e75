// Package clock provides the wall clock and calendar-day helpers used by the
// attendance and leave services.
package clock

import "time"

type Clock interface {
	Now() time.Time
	// Today returns the current calendar day in the clock's location as a
	// UTC midnight value.
	Today() time.Time
}

type systemClock struct {
	loc *time.Location
}

func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *systemClock) Today() time.Time {
	return DateOf(c.Now())
}

// Fixed is a Clock that always returns the same instant. Used in tests.
type Fixed struct {
	At time.Time
}

func (f *Fixed) Now() time.Time {
	return f.At
}

func (f *Fixed) Today() time.Time {
	return DateOf(f.At)
}

// Advance moves the fixed clock forward.
func (f *Fixed) Advance(d time.Duration) {
	f.At = f.At.Add(d)
}

// DateOf truncates t to its calendar day, keeping the day as seen in t's
// own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days returns every calendar day from start to end inclusive, ascending.
// Returns nil when end is before start.
func Days(start, end time.Time) []time.Time {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
