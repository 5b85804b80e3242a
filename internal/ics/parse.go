package ics

import (
	"bytes"
	"fmt"
	"log/slog"

	ical "github.com/arran4/golang-ical"
)

// RawTimestamp is one DTSTART/DTEND property as found in the document: the
// raw ICS value plus the TZID parameter when present. Normalization into a
// model.EventTime happens in internal/feed.
type RawTimestamp struct {
	Value string
	TZID  string
}

func (ts RawTimestamp) Present() bool {
	return ts.Value != ""
}

// RawEvent is one VEVENT as consumed by the pipeline: descriptive text, the
// raw start/end timestamps, and the raw recurrence property values, each of
// which may appear zero, one or multiple times.
type RawEvent struct {
	Summary     string
	Description string
	Location    string

	Start RawTimestamp
	End   RawTimestamp

	RRules  []string
	ExRules []string
	RDates  []string
	ExDates []string
}

// Parse extracts the event components of an ICS document. Components other
// than VEVENT are ignored.
func Parse(body []byte) ([]RawEvent, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	events := make([]RawEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		events = append(events, extractEvent(ve))
	}
	slog.Debug("calendar parsed", "event_count", len(events))
	return events, nil
}

func extractEvent(ve *ical.VEvent) RawEvent {
	var out RawEvent

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	out.Start = timestampOf(ve, ical.ComponentPropertyDtStart)
	out.End = timestampOf(ve, ical.ComponentPropertyDtEnd)

	out.RRules = valuesOf(ve, ical.ComponentPropertyRrule)
	out.ExRules = valuesOf(ve, "EXRULE")
	out.RDates = valuesOf(ve, "RDATE")
	out.ExDates = valuesOf(ve, ical.ComponentPropertyExdate)

	return out
}

func timestampOf(ve *ical.VEvent, name ical.ComponentProperty) RawTimestamp {
	p := ve.GetProperty(name)
	if p == nil {
		return RawTimestamp{}
	}
	ts := RawTimestamp{Value: p.Value}
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		ts.TZID = tzs[0]
	}
	return ts
}

func valuesOf(ve *ical.VEvent, name ical.ComponentProperty) []string {
	props := ve.GetProperties(name)
	if len(props) == 0 {
		return nil
	}
	vals := make([]string, 0, len(props))
	for _, p := range props {
		if p.Value != "" {
			vals = append(vals, p.Value)
		}
	}
	return vals
}
