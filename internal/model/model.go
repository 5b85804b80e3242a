package model

// Occurrence is a single concrete instance of a calendar event, either the
// event itself or one materialized by recurrence expansion. It owns copies
// of the descriptive strings; expansion clones them from the source event.
type Occurrence struct {
	Summary     string
	Description string
	Location    string

	Start EventTime
	End   EventTime
}

// Location pairs the free-text location of an event with a resolvable URL.
type Location struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Event is one record of the public feed. Optional fields are omitted from
// the JSON output entirely rather than serialized as null.
type Event struct {
	Summary     string    `json:"summary"`
	DisplayDate string    `json:"displayDate"`
	StartISO    string    `json:"startISO8601"`
	EndISO      string    `json:"endISO8601"`
	Location    *Location `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}
