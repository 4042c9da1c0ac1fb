// Package calendar classifies calendar days and counts leave days between dates.
package calendar

import (
	"time"

	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
)

// ErrInvalidDateRange is returned when an end date precedes its start date.
var ErrInvalidDateRange = errors.New("end date must not be before start date")

// Date returns midnight UTC of t's calendar day, dropping time of day and location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(core.DateLayout, core.CleanString(s))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing date %q", s)
	}
	return t, nil
}

// IsWeekend reports whether t falls on a Saturday or a Sunday.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// Days returns every calendar day from start to end, both inclusive.
func Days(start, end time.Time) []time.Time {
	start, end = Date(start), Date(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// CountDays counts the days from start to end inclusive, skipping weekends when excludeWeekends is set.
func CountDays(start, end time.Time, excludeWeekends bool) (int, error) {
	return Counter{}.CountDays(start, end, excludeWeekends)
}

// Counter counts days, optionally skipping school holidays along with weekends.
type Counter struct {
	Holidays Holidays
}

func (c Counter) CountDays(start, end time.Time, excludeWeekends bool) (int, error) {
	start, end = Date(start), Date(end)
	if end.Before(start) {
		return 0, ErrInvalidDateRange
	}
	var n int
	for _, d := range Days(start, end) {
		if excludeWeekends && (IsWeekend(d) || c.Holidays.Contains(d)) {
			continue
		}
		n++
	}
	return n, nil
}

// Holidays is a set of non-working calendar days.
type Holidays map[time.Time]string

// NewHolidays builds a set from date → name pairs.
func NewHolidays(days map[time.Time]string) Holidays {
	h := make(Holidays, len(days))
	for d, name := range days {
		h[Date(d)] = name
	}
	return h
}

// HolidaysFrom parses {"YYYY-MM-DD": name} pairs.
func HolidaysFrom(raw map[string]string) (Holidays, error) {
	h := make(Holidays, len(raw))
	for s, name := range raw {
		d, err := ParseDate(s)
		if err != nil {
			return nil, errors.Wrap(err, "parsing holiday")
		}
		h[d] = name
	}
	return h, nil
}

func (h Holidays) Contains(t time.Time) bool {
	if h == nil {
		return false
	}
	_, ok := h[Date(t)]
	return ok
}
