package model

import "time"

type timeKind int

const (
	kindNone timeKind = iota
	kindDate
	kindInstant
)

// EventTime is one normalized calendar timestamp. ICS timestamps arrive in
// three shapes (bare date, UTC date-time, local date-time + TZID); after
// normalization only two remain: a plain calendar date or a UTC instant.
// The zero value means "no value" (normalization failed or the property was
// absent); it never passes a Valid() check.
//
// A plain date is stored as midnight UTC of that date, which doubles as its
// comparison key for sorting. The stored representation is never shifted by
// a timezone.
type EventTime struct {
	t    time.Time
	kind timeKind
}

// NewDate returns the plain-date variant.
func NewDate(year int, month time.Month, day int) EventTime {
	return EventTime{
		t:    time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		kind: kindDate,
	}
}

// NewInstant returns the UTC-instant variant, truncated to whole seconds.
func NewInstant(t time.Time) EventTime {
	return EventTime{
		t:    t.UTC().Truncate(time.Second),
		kind: kindInstant,
	}
}

func (e EventTime) Valid() bool {
	return e.kind != kindNone
}

func (e EventTime) IsDate() bool {
	return e.kind == kindDate
}

// SameKind reports whether both timestamps are valid and share a variant.
// Duration arithmetic between the two variants is undefined, so events whose
// start and end resolve to different variants are dropped downstream.
func (e EventTime) SameKind(o EventTime) bool {
	return e.Valid() && e.kind == o.kind
}

// Time returns the underlying UTC time (midnight for plain dates).
func (e EventTime) Time() time.Time {
	return e.t
}

// Unix is the sort/comparison key: a plain date compares as midnight UTC of
// that date, an instant as itself.
func (e EventTime) Unix() int64 {
	return e.t.Unix()
}

// DayNumber returns the whole-day count since the Unix epoch for the
// timestamp's UTC calendar date. Window comparisons for plain dates happen
// at day granularity.
func (e EventTime) DayNumber() int {
	return DayNumber(e.t)
}

// AddDays shifts a plain date by n whole days.
func (e EventTime) AddDays(n int) EventTime {
	return NewDate(e.t.Year(), e.t.Month(), e.t.Day()+n)
}

// ISO8601 renders the timestamp for machine consumption: YYYY-MM-DD for a
// plain date, RFC3339 in UTC for an instant.
func (e EventTime) ISO8601() string {
	if e.kind == kindDate {
		return e.t.Format("2006-01-02")
	}
	return e.t.Format(time.RFC3339)
}

// DayNumber returns the whole-day count since the Unix epoch of t's UTC
// calendar date. Dates before 1970 are not expected in feed input.
func DayNumber(t time.Time) int {
	u := t.UTC()
	return int(time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
