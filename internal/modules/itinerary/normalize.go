package itinerary

import (
	"log"
	"strconv"
	"strings"
)

const placeholderTitle = "Untitled activity"

// Normalize coerces the loosely-shaped value recovered from an LLM response
// into a canonical Itinerary. Accepted shapes are a bare list of
// day-candidates or a mapping with a "days" list; anything else yields an
// empty itinerary with a logged diagnostic. Malformed entries are dropped or
// defaulted, never fatal. ids supplies activity identifiers for candidates
// that carry none; pass nil for the random strategy.
//
// Normalizing an already-canonical itinerary is an identity operation.
func Normalize(parsed any, ids IDFunc) Itinerary {
	if ids == nil {
		ids = RandomIDs()
	}

	dayCandidates := daysOf(parsed)
	if dayCandidates == nil {
		return Itinerary{}
	}

	out := make(Itinerary, 0, len(dayCandidates))
	seen := map[string]bool{}
	for i, candidate := range dayCandidates {
		raw, ok := candidate.(map[string]any)
		if !ok {
			continue
		}
		day := Day{
			Number:     i + 1,
			Date:       stringOr(raw["date"], "TBD"),
			Location:   stringOr(raw["location"], "TBD"),
			Budget:     numberOr(raw["daily_budget"], 0),
			Activities: []Activity{},
		}
		if day.Budget < 0 {
			day.Budget = 0
		}

		acts, _ := raw["activities"].([]any)
		for _, entry := range acts {
			a, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			activity := buildActivity(a, day.Location)
			if activity.ID == "" || seen[activity.ID] {
				activity.ID = ids()
			}
			seen[activity.ID] = true
			day.Activities = append(day.Activities, activity)
		}
		out = append(out, day)
	}
	return out
}

// NormalizeActivities coerces a parsed value into a flat activity list, used
// when a model response covers a slice of one day rather than a whole trip.
// Accepted shapes: a bare list of activity objects, or an object wrapping
// one under an "activities" key. Every result gets a fresh identifier.
func NormalizeActivities(parsed any, fallbackLocation string, ids IDFunc) []Activity {
	if ids == nil {
		ids = RandomIDs()
	}
	entries, ok := parsed.([]any)
	if !ok {
		if m, isMap := parsed.(map[string]any); isMap {
			entries, ok = m["activities"].([]any)
		}
		if !ok {
			if parsed != nil {
				log.Printf("itinerary: format mismatch: expected activity list, got %T", parsed)
			}
			return nil
		}
	}
	var out []Activity
	for _, entry := range entries {
		a, isMap := entry.(map[string]any)
		if !isMap {
			continue
		}
		activity := buildActivity(a, fallbackLocation)
		activity.ID = ids()
		out = append(out, activity)
	}
	return out
}

func buildActivity(a map[string]any, fallbackLocation string) Activity {
	activity := Activity{
		ID:        stringOr(a["id"], ""),
		Title:     stringOr(a["title"], placeholderTitle),
		StartTime: stringOr(a["start_time"], "TBD"),
		EndTime:   stringOr(a["end_time"], "TBD"),
		Location:  stringOr(a["location"], fallbackLocation),
		Cost:      numberOr(a["cost"], 0),
		Confirmed: boolOr(a["isConfirmed"]),
		Todos:     todosOf(a["todos"]),
	}
	if activity.Cost < 0 {
		activity.Cost = 0
	}
	return activity
}

// daysOf unwraps the two accepted top-level shapes.
func daysOf(parsed any) []any {
	switch v := parsed.(type) {
	case []any:
		return v
	case map[string]any:
		if days, ok := v["days"].([]any); ok {
			return days
		}
		log.Printf("itinerary: format mismatch: object has no usable days key (keys: %v)", keysOf(v))
		return nil
	case nil:
		return nil
	default:
		log.Printf("itinerary: format mismatch: unexpected payload type %T", parsed)
		return nil
	}
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func stringOr(v any, def string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// numberOr accepts whatever numeric-like value JSON decoding produced:
// float64, int, or a numeric string (models quote costs routinely).
func numberOr(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}

func boolOr(v any) bool {
	b, _ := v.(bool)
	return b
}

func todosOf(v any) []Todo {
	entries, ok := v.([]any)
	if !ok {
		return nil
	}
	var todos []Todo
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		text := stringOr(m["text"], "")
		if text == "" {
			continue
		}
		todos = append(todos, Todo{Text: text, Done: boolOr(m["done"])})
	}
	return todos
}
