// Package spaces resolves free-text event locations into links. Locations
// beginning with a known university space label link into the campus
// navigator; everything else falls back to a map search.
package spaces

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Space is one entry of the location registry. Matching is first-match-wins
// in registry order, by case-sensitive label prefix.
type Space struct {
	Label string
	ID    string
}

type registryDoc struct {
	Items []struct {
		SpaceLabel string `json:"spaceLabel"`
		ID         string `json:"id"`
	} `json:"items"`
}

// Parse decodes the registry document. Entries with an empty label are
// discarded; they would prefix-match every location.
func Parse(body []byte) ([]Space, error) {
	var doc registryDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse space registry: %w", err)
	}

	out := make([]Space, 0, len(doc.Items))
	for _, item := range doc.Items {
		if item.SpaceLabel == "" {
			continue
		}
		out = append(out, Space{Label: item.SpaceLabel, ID: item.ID})
	}
	return out, nil
}

// URLFor maps a location string to a URL. The first registry entry whose
// label is a prefix of the location wins; with no match the location is
// percent-encoded into a Google Maps search. Total over all inputs.
func URLFor(location string, spaces []Space) string {
	for _, space := range spaces {
		if strings.HasPrefix(location, space.Label) {
			return "https://navi.jyu.fi/space/" + space.ID
		}
	}
	return "https://www.google.com/maps/search/?api=1&query=" + percentEncode(location)
}

func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
