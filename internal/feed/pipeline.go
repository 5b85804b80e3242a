// Package feed implements the event normalization pipeline: timestamp
// normalization, recurrence expansion, temporal window filtering, sorting
// and display formatting, plus the cached service wrapping it all.
package feed

import (
	"time"

	"eventfeed/internal/ics"
	"eventfeed/internal/model"
	"eventfeed/internal/spaces"
)

// BuildEvents runs the whole pipeline over one calendar snapshot. It is
// purely functional over its inputs; the supplied now is the single
// reference time for the run, so filtering and sorting stay self-consistent.
func BuildEvents(events []ics.RawEvent, registry []spaces.Space, now time.Time, display *time.Location) []model.Event {
	occs := make([]model.Occurrence, 0, len(events))
	for _, ev := range events {
		occs = append(occs, Expand(ev)...)
	}

	occs = FilterWindow(occs, now)
	SortByEnd(occs)

	formatter := Formatter{Display: display, Spaces: registry}
	out := make([]model.Event, 0, len(occs))
	for _, occ := range occs {
		if ev, ok := formatter.Format(occ); ok {
			out = append(out, ev)
		}
	}
	return out
}
