// README: Itinerary aggregate: trip parameters, days, activities, todos.
package itinerary

// TripParameters are the structured constraints a planning session starts
// from. They are immutable for the life of the session; a new trip replaces
// them wholesale.
type TripParameters struct {
	Budget        int    `json:"budget"`
	PeopleCount   int    `json:"people_count"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`
}

// Todo is a sub-item attached to an activity.
type Todo struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Activity is one scheduled item inside a day. IDs are opaque strings unique
// across the whole itinerary, not just within a day.
type Activity struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  string  `json:"location"`
	Cost      float64 `json:"cost"`
	Confirmed bool    `json:"isConfirmed"`
	Todos     []Todo  `json:"todos,omitempty"`
}

// Day holds one calendar day of the trip. Number is 1-based and matches the
// day's position in the itinerary after normalization.
type Day struct {
	Number     int        `json:"day"`
	Date       string     `json:"date"`
	Location   string     `json:"location"`
	Activities []Activity `json:"activities"`
	Budget     float64    `json:"daily_budget"`
}

// Itinerary is the canonical ordered day/activity schedule for a session.
type Itinerary []Day

// FindActivity locates an activity by ID across all days. Returns the day
// index, activity index, and whether it was found.
func (it Itinerary) FindActivity(id string) (int, int, bool) {
	for di := range it {
		for ai := range it[di].Activities {
			if it[di].Activities[ai].ID == id {
				return di, ai, true
			}
		}
	}
	return 0, 0, false
}

// TotalCost sums activity costs across the whole itinerary.
func (it Itinerary) TotalCost() float64 {
	var total float64
	for _, d := range it {
		for _, a := range d.Activities {
			total += a.Cost
		}
	}
	return total
}
