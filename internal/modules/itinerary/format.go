package itinerary

import (
	"sort"

	"github.com/samber/lo"
)

// EventView is the flattened per-activity shape returned to clients: each
// activity annotated with its day's date, ordered day by day and by start
// time within a day.
type EventView struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Location  string  `json:"location"`
	Title     string  `json:"title"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Cost      float64 `json:"cost"`
	Confirmed bool    `json:"isConfirmed"`
	Todos     []Todo  `json:"todos,omitempty"`
}

// Summary is the trip-level rollup sent alongside the event list.
type Summary struct {
	Destination string  `json:"destination"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Days        int     `json:"days"`
	TotalCost   float64 `json:"total_cost"`
	Budget      int     `json:"budget"`
	Travelers   int     `json:"travelers"`
}

// FlattenEvents produces the client-facing event list. Unparseable start
// times sort first within their day rather than breaking the ordering.
func FlattenEvents(it Itinerary) []EventView {
	var out []EventView
	for _, day := range it {
		acts := make([]Activity, len(day.Activities))
		copy(acts, day.Activities)
		sort.SliceStable(acts, func(i, j int) bool {
			return ClockMinutes(acts[i].StartTime) < ClockMinutes(acts[j].StartTime)
		})
		out = append(out, lo.Map(acts, func(a Activity, _ int) EventView {
			loc := a.Location
			if loc == "" {
				loc = day.Location
			}
			return EventView{
				ID:        a.ID,
				Date:      day.Date,
				Location:  loc,
				Title:     a.Title,
				StartTime: a.StartTime,
				EndTime:   a.EndTime,
				Cost:      a.Cost,
				Confirmed: a.Confirmed,
				Todos:     a.Todos,
			}
		})...)
	}
	if out == nil {
		out = []EventView{}
	}
	return out
}

// Summarize rolls the itinerary up against its trip parameters.
func Summarize(it Itinerary, params *TripParameters) Summary {
	s := Summary{
		Days:      len(it),
		TotalCost: it.TotalCost(),
	}
	if params != nil {
		s.Destination = params.EndLocation
		s.StartDate = params.StartDate
		s.EndDate = params.EndDate
		s.Budget = params.Budget
		s.Travelers = params.PeopleCount
	}
	return s
}
