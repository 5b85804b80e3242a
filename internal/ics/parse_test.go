package ics_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventfeed/internal/ics"
)

func fixture(lines ...string) []byte {
	all := append([]string{
		"BEGIN:VCALENDAR",
		"PRODID:-//Test//EN",
		"VERSION:2.0",
	}, lines...)
	all = append(all, "END:VCALENDAR", "")
	return []byte(strings.Join(all, "\r\n"))
}

func TestParseExtractsEventProperties(t *testing.T) {
	events, err := ics.Parse(fixture(
		"BEGIN:VEVENT",
		"UID:1",
		"SUMMARY:Guild meeting",
		"DESCRIPTION:Bring snacks",
		"LOCATION:AgC233",
		"DTSTART;TZID=Europe/Helsinki:20260203T100000",
		"DTEND;TZID=Europe/Helsinki:20260203T120000",
		"END:VEVENT",
	))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "Guild meeting", ev.Summary)
	assert.Equal(t, "Bring snacks", ev.Description)
	assert.Equal(t, "AgC233", ev.Location)
	assert.Equal(t, "20260203T100000", ev.Start.Value)
	assert.Equal(t, "Europe/Helsinki", ev.Start.TZID)
	assert.Equal(t, "20260203T120000", ev.End.Value)
	assert.True(t, ev.Start.Present())
}

func TestParseCollectsRecurrenceProperties(t *testing.T) {
	events, err := ics.Parse(fixture(
		"BEGIN:VEVENT",
		"UID:2",
		"SUMMARY:Weekly",
		"DTSTART:20260203T100000Z",
		"DTEND:20260203T110000Z",
		"RRULE:FREQ=WEEKLY;COUNT=10",
		"EXDATE:20260210T100000Z",
		"EXDATE:20260217T100000Z",
		"RDATE:20260301T100000Z",
		"END:VEVENT",
	))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, []string{"FREQ=WEEKLY;COUNT=10"}, ev.RRules)
	assert.Equal(t, []string{"20260210T100000Z", "20260217T100000Z"}, ev.ExDates)
	assert.Equal(t, []string{"20260301T100000Z"}, ev.RDates)
	assert.Empty(t, ev.ExRules)
}

func TestParseIgnoresMissingOptionalProperties(t *testing.T) {
	events, err := ics.Parse(fixture(
		"BEGIN:VEVENT",
		"UID:3",
		"SUMMARY:Bare",
		"DTSTART;VALUE=DATE:20260203",
		"END:VEVENT",
	))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Empty(t, ev.Description)
	assert.Empty(t, ev.Location)
	assert.False(t, ev.End.Present())
	assert.Empty(t, ev.RRules)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ics.Parse([]byte("this is not a calendar"))
	assert.Error(t, err)
}
