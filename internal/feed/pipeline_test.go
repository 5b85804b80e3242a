package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventfeed/internal/ics"
	"eventfeed/internal/spaces"
)

func calendarFixture(lines ...string) []byte {
	all := append([]string{
		"BEGIN:VCALENDAR",
		"PRODID:-//Mozilla.org/NONSGML Mozilla Calendar V1.1//EN",
		"VERSION:2.0",
		"NAME:Test Calendar",
	}, lines...)
	all = append(all, "END:VCALENDAR", "")
	return []byte(strings.Join(all, "\r\n"))
}

func TestPipelineSingleUpcomingEvent(t *testing.T) {
	raw, err := ics.Parse(calendarFixture(
		"BEGIN:VEVENT",
		"UID:ee5a0fb2-6f9d-437b-a529-ab501f48876b",
		"DTSTAMP:20260201T160619Z",
		"SUMMARY:Test Event",
		"DTSTART;VALUE=DATE:20260203",
		"DTEND;VALUE=DATE:20260204",
		"LOCATION:Test Location",
		"DESCRIPTION:Test description",
		"END:VEVENT",
	))
	require.NoError(t, err)

	events := BuildEvents(raw, nil, testNow, time.UTC)

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "Test Event", ev.Summary)
	assert.Equal(t, "03/02/2026", ev.DisplayDate)
	assert.Equal(t, "2026-02-03", ev.StartISO)
	assert.Equal(t, "2026-02-04", ev.EndISO)
	assert.Equal(t, "Test description", ev.Description)
	require.NotNil(t, ev.Location)
	assert.Equal(t, "Test Location", ev.Location.Text)
	assert.NotEmpty(t, ev.Location.URL)
}

func TestPipelineDropsUnresolvableZoneEntirely(t *testing.T) {
	raw, err := ics.Parse(calendarFixture(
		"BEGIN:VEVENT",
		"UID:a",
		"SUMMARY:Lost in time",
		"DTSTART;TZID=Nowhere/Atlantis:20260303T100000",
		"DTEND;TZID=Nowhere/Atlantis:20260303T110000",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:b",
		"SUMMARY:Still here",
		"DTSTART;VALUE=DATE:20260210",
		"DTEND;VALUE=DATE:20260211",
		"END:VEVENT",
	))
	require.NoError(t, err)

	events := BuildEvents(raw, nil, testNow, time.UTC)

	require.Len(t, events, 1)
	assert.Equal(t, "Still here", events[0].Summary)
}

func TestPipelineExpandsAndSortsRecurrences(t *testing.T) {
	raw, err := ics.Parse(calendarFixture(
		"BEGIN:VEVENT",
		"UID:later",
		"SUMMARY:One-off",
		"DTSTART:20260301T090000Z",
		"DTEND:20260301T100000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:weekly",
		"SUMMARY:Weekly club",
		"DTSTART:20260204T170000Z",
		"DTEND:20260204T180000Z",
		"RRULE:FREQ=WEEKLY;COUNT=3",
		"END:VEVENT",
	))
	require.NoError(t, err)

	events := BuildEvents(raw, nil, testNow, time.UTC)

	require.Len(t, events, 4)
	assert.Equal(t, "Weekly club", events[0].Summary)
	assert.Equal(t, "2026-02-04T18:00:00Z", events[0].EndISO)
	assert.Equal(t, "Weekly club", events[1].Summary)
	assert.Equal(t, "Weekly club", events[2].Summary)
	assert.Equal(t, "One-off", events[3].Summary)
}

func TestPipelineFiltersPastAndFarFuture(t *testing.T) {
	raw, err := ics.Parse(calendarFixture(
		"BEGIN:VEVENT",
		"UID:past",
		"SUMMARY:Already over",
		"DTSTART:20260101T090000Z",
		"DTEND:20260101T100000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:far",
		"SUMMARY:Next decade",
		"DTSTART:20300101T090000Z",
		"DTEND:20300101T100000Z",
		"END:VEVENT",
	))
	require.NoError(t, err)

	events := BuildEvents(raw, nil, testNow, time.UTC)
	assert.Empty(t, events)
}

func TestPipelineUsesRegistryForLocations(t *testing.T) {
	raw, err := ics.Parse(calendarFixture(
		"BEGIN:VEVENT",
		"UID:x",
		"SUMMARY:Seminar",
		"DTSTART;VALUE=DATE:20260210",
		"DTEND;VALUE=DATE:20260211",
		"LOCATION:AgC233 Auditorio",
		"END:VEVENT",
	))
	require.NoError(t, err)

	registry := []spaces.Space{{Label: "AgC233", ID: "7"}}
	events := BuildEvents(raw, registry, testNow, time.UTC)

	require.Len(t, events, 1)
	require.NotNil(t, events[0].Location)
	assert.Equal(t, "https://navi.jyu.fi/space/7", events[0].Location.URL)
}
