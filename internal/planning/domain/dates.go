package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for deadlines and plan dates.
const DateLayout = "2006-01-02"

// NoDeadlineDays is the distance reported for items without a usable deadline.
const NoDeadlineDays = 999

// ParseDate parses an ISO calendar date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders a date in ISO form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CivilDate drops the clock part of t, keeping the calendar day as seen in t's location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from one date to another.
// The result is negative when to is before from.
func DaysBetween(from, to time.Time) int {
	return int(CivilDate(to).Sub(CivilDate(from)).Hours() / 24)
}

// DateRange enumerates every calendar date in [start, end].
func DateRange(start, end time.Time) ([]time.Time, error) {
	start, end = CivilDate(start), CivilDate(end)
	if start.After(end) {
		return nil, ErrStartAfterEnd
	}
	dates := make([]time.Time, 0, DaysBetween(start, end)+1)
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		dates = append(dates, current)
	}
	return dates, nil
}

// DayName returns the English weekday name of t.
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Clock supplies the current time. Injected so runs can be replayed for a fixed day.
type Clock func() time.Time

// SystemClock reads the local wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Deadline is the date after which an item should receive no new allocation.
// It keeps the raw input so unparsable values can still be reported.
type Deadline struct {
	raw  string
	date time.Time
	ok   bool
}

// NewDeadline wraps a raw ISO date. Empty or malformed values produce an unparsed deadline.
func NewDeadline(raw string) Deadline {
	raw = strings.TrimSpace(raw)
	d := Deadline{raw: raw}
	if raw == "" {
		return d
	}
	if t, err := ParseDate(raw); err == nil {
		d.date = t
		d.ok = true
	}
	return d
}

// DeadlineOn builds a parsed deadline from a date.
func DeadlineOn(t time.Time) Deadline {
	date := CivilDate(t)
	return Deadline{raw: FormatDate(date), date: date, ok: true}
}

// Raw returns the deadline as supplied.
func (d Deadline) Raw() string { return d.raw }

// IsSet reports whether any deadline text was supplied.
func (d Deadline) IsSet() bool { return d.raw != "" }

// IsParsed reports whether the deadline is a valid calendar date.
func (d Deadline) IsParsed() bool { return d.ok }

// Date returns the parsed date and whether it is valid.
func (d Deadline) Date() (time.Time, bool) { return d.date, d.ok }

// DaysUntil counts days from today to the deadline, floored at zero.
// Missing or unparsable deadlines report NoDeadlineDays.
func (d Deadline) DaysUntil(today time.Time) int {
	if !d.ok {
		return NoDeadlineDays
	}
	days := DaysBetween(today, d.date)
	if days < 0 {
		return 0
	}
	return days
}

// PassedBy reports whether the deadline is a parsed date strictly before date.
func (d Deadline) PassedBy(date time.Time) bool {
	return d.ok && d.date.Before(CivilDate(date))
}

// String returns the raw deadline text.
func (d Deadline) String() string { return d.raw }
