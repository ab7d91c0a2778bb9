package itinerary

import (
	"encoding/json"
	"fmt"
)

const generateSystem = "You are a travel-planning assistant that returns structured itineraries as JSON only. Never include commentary outside the JSON payload."

const rescheduleSystem = "You reschedule travel activities after a disruption. Return only a JSON array of the adjusted activities."

// generatePrompt embeds the traveler's words plus the structured constraints.
// The response contract mirrors the canonical itinerary schema so the
// normalizer has declared fields to work from.
func generatePrompt(naturalInput string, params TripParameters) string {
	constraints, _ := json.Marshal(params)
	return fmt.Sprintf(`Plan a trip from %s to %s.

User request: %s
Constraints: %s

Respond with JSON of the form:
{"days": [{"day": 1, "date": "YYYY-MM-DD", "location": "...", "daily_budget": 0,
  "activities": [{"title": "...", "start_time": "...", "end_time": "...", "location": "...", "cost": 0}]}]}

Cover every date from %s through %s inclusive and keep the total cost within the budget.`,
		params.StartLocation, params.EndLocation, naturalInput, constraints,
		params.StartDate, params.EndDate)
}

func reschedulePrompt(details string, window []Activity) string {
	affected, _ := json.Marshal(window)
	return fmt.Sprintf(`Disruption: %s

These activities are affected: %s

Return a JSON array of replacement activities with the same fields
(title, start_time, end_time, location, cost). Keep what still works,
adjust what does not.`, details, affected)
}
