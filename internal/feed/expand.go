package feed

import (
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"

	"eventfeed/internal/ics"
	"eventfeed/internal/model"
)

// maxOccurrences caps recurrence expansion per event so unbounded or
// malformed rulesets cannot blow up memory or compute.
const maxOccurrences = 100

// maxExpansionScan bounds the candidate walk when exception rules swallow
// most of an unbounded rule; without it a fully self-excluding ruleset
// would iterate forever.
const maxExpansionScan = 10 * maxOccurrences

// Expand materializes the concrete occurrences of one event. Events without
// occurrence-generating recurrence properties, and events whose ruleset does
// not parse, yield exactly one occurrence: the event's own start and end,
// unchanged. Every materialized occurrence keeps the original event's
// duration, counted in whole days for plain-date pairs and in seconds for
// instant pairs.
func Expand(ev ics.RawEvent) []model.Occurrence {
	base := model.Occurrence{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       NormalizeTimestamp(ev.Start),
		End:         NormalizeTimestamp(ev.End),
	}

	if len(ev.RRules)+len(ev.RDates) == 0 {
		return []model.Occurrence{base}
	}

	// Duration arithmetic needs the start/end pair in one matching
	// representation; otherwise the whole expansion is skipped.
	if !base.Start.SameKind(base.End) {
		slog.Warn("skipping recurrence expansion: start/end not comparable", "summary", ev.Summary)
		return nil
	}

	set, err := parseRuleset(ev, base.Start)
	if err != nil {
		slog.Warn("unparseable recurrence ruleset", "summary", ev.Summary, "error", err)
		return []model.Occurrence{base}
	}

	starts := occurrenceStarts(set, ev.ExRules, base.Start)

	out := make([]model.Occurrence, 0, len(starts))
	for _, start := range starts {
		occ := base
		if base.Start.IsDate() {
			days := base.End.DayNumber() - base.Start.DayNumber()
			occ.Start = model.NewDate(start.Year(), start.Month(), start.Day())
			occ.End = occ.Start.AddDays(days)
		} else {
			dur := base.End.Time().Sub(base.Start.Time())
			occ.Start = model.NewInstant(start)
			occ.End = model.NewInstant(start.Add(dur))
		}
		out = append(out, occ)
	}
	return out
}

// parseRuleset assembles the event's recurrence properties into an rrule
// set anchored at the normalized start. DTSTART is reconstructed from the
// normalized timestamp rather than copied raw, so date-only and zoned
// anchors come out in one canonical UTC form the rule parser understands.
func parseRuleset(ev ics.RawEvent, start model.EventTime) (*rrule.Set, error) {
	lines := make([]string, 0, 1+len(ev.RRules)+len(ev.RDates)+len(ev.ExDates))
	lines = append(lines, "DTSTART:"+start.Time().UTC().Format(localLayout)+"Z")
	for _, v := range ev.RRules {
		lines = append(lines, "RRULE:"+v)
	}
	for _, v := range ev.RDates {
		lines = append(lines, "RDATE:"+v)
	}
	for _, v := range ev.ExDates {
		lines = append(lines, "EXDATE:"+v)
	}
	return rrule.StrSliceToRRuleSet(lines)
}

// occurrenceStarts walks the set's occurrences in order, dropping instants
// produced by any EXRULE, until the cap is reached or the set is exhausted.
// rrule-go has no native EXRULE handling, so each exception rule is anchored
// at the same start and advanced in lockstep with the candidates; exclusions
// never count against the cap.
func occurrenceStarts(set *rrule.Set, exRules []string, anchor model.EventTime) []time.Time {
	cursors := exRuleCursors(exRules, anchor)

	starts := make([]time.Time, 0)
	next := set.Iterator()
	for scanned := 0; len(starts) < maxOccurrences && scanned < maxExpansionScan; scanned++ {
		t, ok := next()
		if !ok {
			break
		}
		if excludedBy(cursors, t) {
			continue
		}
		starts = append(starts, t)
	}
	return starts
}

// exRuleCursor streams one exception rule's instances in ascending order.
type exRuleCursor struct {
	next rrule.Next
	cur  time.Time
	ok   bool
}

func exRuleCursors(exRules []string, anchor model.EventTime) []*exRuleCursor {
	cursors := make([]*exRuleCursor, 0, len(exRules))
	for _, v := range exRules {
		r, err := rrule.StrToRRule(v)
		if err != nil {
			slog.Warn("unparseable EXRULE", "exrule", v, "error", err)
			continue
		}
		r.DTStart(anchor.Time())
		c := &exRuleCursor{next: r.Iterator()}
		c.cur, c.ok = c.next()
		cursors = append(cursors, c)
	}
	return cursors
}

// excludedBy reports whether t is an instance of any exception rule.
// Candidates arrive in ascending order, so each cursor only ever moves
// forward.
func excludedBy(cursors []*exRuleCursor, t time.Time) bool {
	for _, c := range cursors {
		for c.ok && c.cur.Before(t) {
			c.cur, c.ok = c.next()
		}
		if c.ok && c.cur.Equal(t) {
			return true
		}
	}
	return false
}
