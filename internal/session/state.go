// README: Per-client session state: itinerary, trip parameters, suggestions.
package session

import (
	"tripwise/internal/modules/itinerary"
	"tripwise/internal/modules/suggestion"
)

// State is everything the server holds for one client between requests.
// It lives only for the session TTL; there is no durable storage behind it.
// A new trip replaces the whole thing.
type State struct {
	TripEvents      itinerary.Itinerary       `json:"trip_events,omitempty"`
	TripParameters  *itinerary.TripParameters `json:"trip_parameters,omitempty"`
	NaturalInput    string                    `json:"trip_natural_input,omitempty"`
	TripSuggestions []suggestion.Option       `json:"trip_suggestions,omitempty"`
	// ExtraTitles are substitute titles that never landed in a suggestion
	// slot; they stay out of the visible option list but still count as seen.
	ExtraTitles []string `json:"trip_extra_titles,omitempty"`
}

// HasItinerary reports whether a trip has been generated for this session.
func (s *State) HasItinerary() bool {
	return s != nil && s.TripEvents != nil
}

// HasParameters reports whether a planning session has started.
func (s *State) HasParameters() bool {
	return s != nil && s.TripParameters != nil
}

// SeenTitles collects every suggestion title shown so far, primaries and
// alternatives alike, for duplicate screening.
func (s *State) SeenTitles() []string {
	if s == nil {
		return nil
	}
	var titles []string
	for _, opt := range s.TripSuggestions {
		titles = append(titles, opt.Title)
		if opt.Alternative != nil {
			titles = append(titles, opt.Alternative.Title)
		}
	}
	titles = append(titles, s.ExtraTitles...)
	return titles
}
