package feed

import (
	"log/slog"
	"strings"
	"time"

	"eventfeed/internal/ics"
	"eventfeed/internal/model"
)

const (
	dateLayout  = "20060102"
	utcLayout   = "20060102T150405Z"
	localLayout = "20060102T150405"
)

// NormalizeTimestamp converts a raw calendar timestamp into its canonical
// form: a plain date for bare DATE values, a UTC instant for UTC-flagged
// date-times and for zoned date-times whose TZID resolves. Anything else
// (unknown zone, floating date-time, malformed value) yields the invalid
// EventTime and a diagnostic; the event is dropped wherever the timestamp
// was required. Never fatal.
func NormalizeTimestamp(ts ics.RawTimestamp) model.EventTime {
	if !ts.Present() {
		return model.EventTime{}
	}

	v := ts.Value
	switch {
	case !strings.Contains(v, "T"):
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			slog.Warn("unparseable date value", "value", v)
			return model.EventTime{}
		}
		return model.NewDate(t.Year(), t.Month(), t.Day())

	case strings.HasSuffix(v, "Z"):
		t, err := time.Parse(utcLayout, v)
		if err != nil {
			slog.Warn("unparseable UTC date-time", "value", v)
			return model.EventTime{}
		}
		return model.NewInstant(t)

	case ts.TZID != "":
		loc, err := time.LoadLocation(ts.TZID)
		if err != nil {
			// Zone not in the tz database: drop rather than guess.
			slog.Warn("unresolvable timezone", "tzid", ts.TZID)
			return model.EventTime{}
		}
		t, err := time.ParseInLocation(localLayout, v, loc)
		if err != nil {
			slog.Warn("unparseable zoned date-time", "value", v, "tzid", ts.TZID)
			return model.EventTime{}
		}
		return model.NewInstant(t)

	default:
		// Floating date-times carry no zone at all.
		slog.Warn("unhandled timestamp shape", "value", v)
		return model.EventTime{}
	}
}
