package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripwise/internal/modules/itinerary"
)

const generateSystem = "You suggest travel activities as JSON only. Never include commentary outside the JSON payload."

func generatePrompt(count int, naturalInput string, params itinerary.TripParameters) string {
	constraints, _ := json.Marshal(params)
	return fmt.Sprintf(`Suggest %d activity options for a trip to %s.

User request: %s
Constraints: %s

Spread the options across categories (food, culture, outdoors, nightlife)
and times of day. Respond with a JSON array of exactly %d objects:
[{"title": "...", "description": "...", "duration": "2 hours", "cost": 0,
  "category": "...", "location": "...", "best_time": "morning",
  "alternative": {"title": "...", "description": "...", "duration": "...",
                  "cost": 0, "category": "...", "location": "...", "best_time": "..."}}]

Every location must be in or near %s. Each alternative must fit the same
category and time of day as its option.`,
		count, params.EndLocation, naturalInput, constraints, count, params.EndLocation)
}

func alternativePrompt(rejected Rejected, previousTitles []string, params itinerary.TripParameters) string {
	return fmt.Sprintf(`The traveler rejected this suggestion for a trip to %s:
%s (category: %s, best time: %s, duration: %s)

Propose ONE different activity in the same category and time slot.
It must not repeat any of these already-seen suggestions:
- %s

The location must be in or near %s. Respond with a single JSON object:
{"title": "...", "description": "...", "duration": "...", "cost": 0,
 "category": "%s", "location": "...", "best_time": "%s"}`,
		params.EndLocation, rejected.Title, rejected.Category, rejected.BestTime, rejected.Duration,
		strings.Join(previousTitles, "\n- "), params.EndLocation,
		rejected.Category, rejected.BestTime)
}

// Describe synthesizes the natural-language compilation prompt for the
// chosen options, which the itinerary pipeline turns into a committed
// schedule.
func Describe(selected []Option) string {
	var b strings.Builder
	b.WriteString("Build a day-by-day itinerary around these chosen activities:\n")
	for _, opt := range selected {
		fmt.Fprintf(&b, "- %s at %s (%s, best in the %s, about %s, around $%.0f)\n",
			opt.Title, opt.Location, opt.Category, opt.BestTime, opt.Duration, opt.Cost)
	}
	b.WriteString("Schedule each chosen activity at its preferred time of day and fill sensible gaps around them.")
	return b.String()
}
