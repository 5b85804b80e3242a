package feed

import (
	"sort"
	"time"

	"eventfeed/internal/model"
)

// windowDays is how far into the future the feed reaches.
const windowDays = 365

// FilterWindow keeps occurrences that have not yet ended and that end
// before the one-year horizon. Plain-date ends compare at day granularity
// against the bound's UTC date, with no timezone shift; instants compare at
// second granularity. The lower bound is inclusive, the horizon exclusive.
// Occurrences without a normalized end never pass.
func FilterWindow(occs []model.Occurrence, now time.Time) []model.Occurrence {
	horizon := now.Add(windowDays * 24 * time.Hour)

	kept := make([]model.Occurrence, 0, len(occs))
	for _, occ := range occs {
		if !occ.End.Valid() {
			continue
		}
		if occ.End.IsDate() {
			d := occ.End.DayNumber()
			if d >= model.DayNumber(now) && d < model.DayNumber(horizon) {
				kept = append(kept, occ)
			}
			continue
		}
		u := occ.End.Unix()
		if u >= now.Unix() && u < horizon.Unix() {
			kept = append(kept, occ)
		}
	}
	return kept
}

// SortByEnd orders occurrences ascending by end time, where a plain date
// sorts as UTC midnight of that calendar date. The sort is stable; equal
// ends keep their input order.
func SortByEnd(occs []model.Occurrence) {
	sort.SliceStable(occs, func(i, j int) bool {
		return occs[i].End.Unix() < occs[j].End.Unix()
	})
}
