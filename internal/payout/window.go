package payout

import "time"

const dayLayout = "2006-01-02"

// Window is an inclusive date range at day precision.
type Window struct {
	From time.Time
	To   time.Time
}

// ParseWindow builds a Window from two ISO-8601 date strings. An empty
// or unparsable endpoint becomes the zero time, which produces a window
// that matches nothing; callers wanting a hard failure should run
// ValidateDateRanges first.
func ParseWindow(from, to string) Window {
	return Window{From: parseDay(from), To: parseDay(to)}
}

// Contains reports whether t falls inside the window, inclusive on both
// ends. Zero times (missing or malformed dates) never match.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() || w.From.IsZero() || w.To.IsZero() {
		return false
	}
	d := truncateDay(t)
	return !d.Before(truncateDay(w.From)) && !d.After(truncateDay(w.To))
}

// ContainsPtr is Contains for optional dates; nil never matches.
func (w Window) ContainsPtr(t *time.Time) bool {
	if t == nil {
		return false
	}
	return w.Contains(*t)
}

func parseDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
