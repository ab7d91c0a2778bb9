// README: Suggestion options: candidate activities proposed before commitment.
package suggestion

// Option is a not-yet-committed activity proposal. Options live in the
// session next to, never inside, the canonical itinerary. Each generated
// option carries exactly one alternative for its category/time slot.
type Option struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Cost        float64 `json:"cost"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	BestTime    string  `json:"best_time"`
	Alternative *Option `json:"alternative,omitempty"`
}

// Rejected describes the option a user turned down when requesting a
// substitute.
type Rejected struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	BestTime string `json:"best_time"`
	Duration string `json:"duration"`
}
