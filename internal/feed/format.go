package feed

import (
	"fmt"
	"time"

	"eventfeed/internal/model"
	"eventfeed/internal/spaces"
)

// Formatter renders occurrences into display-ready feed records.
type Formatter struct {
	// Display is the zone used for the human-readable time range of
	// instant-based events. Plain dates render as written.
	Display *time.Location
	Spaces  []spaces.Space
}

// Format assembles the output record for one occurrence. The second return
// is false when a required field (summary, normalized start or end) is
// missing, or when start and end use different representations.
func (f Formatter) Format(occ model.Occurrence) (model.Event, bool) {
	if occ.Summary == "" || !occ.Start.SameKind(occ.End) {
		return model.Event{}, false
	}

	ev := model.Event{
		Summary:     occ.Summary,
		DisplayDate: f.displayDate(occ.Start, occ.End),
		StartISO:    occ.Start.ISO8601(),
		EndISO:      occ.End.ISO8601(),
	}
	if occ.Location != "" {
		ev.Location = &model.Location{
			Text: occ.Location,
			URL:  spaces.URLFor(occ.Location, f.Spaces),
		}
	}
	if occ.Description != "" {
		ev.Description = occ.Description
	}
	return ev, true
}

func (f Formatter) displayDate(start, end model.EventTime) string {
	if start.IsDate() {
		// An all-day single-day ICS event ends on the following date, so a
		// one-day span renders as a single date.
		if end.DayNumber()-start.DayNumber() == 1 {
			return start.Time().Format("02/01/2006")
		}
		return fmt.Sprintf("%s - %s",
			start.Time().Format("02/01/2006"), end.Time().Format("02/01/2006"))
	}

	loc := f.Display
	if loc == nil {
		loc = time.Local
	}
	s := start.Time().In(loc)
	e := end.Time().In(loc)
	if e.Sub(s) < 24*time.Hour {
		return fmt.Sprintf("%s %s - %s",
			s.Format("02/01/2006"), s.Format("15:04"), e.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s",
		s.Format("02/01/2006 15:04"), e.Format("02/01 15:04"))
}
