// README: Point mutations on the session-held itinerary, keyed by activity ID.
package itinerary

import "errors"

var (
	// ErrNotFound means the target activity or day is absent from the itinerary.
	ErrNotFound = errors.New("activity not found")
	// ErrValidation means the caller omitted a required field.
	ErrValidation = errors.New("missing required field")
)

// Update is the complete field set a modify operation must supply. Exactly
// these five fields are overwritten; identifier, confirmation state, and
// todos are untouched.
type Update struct {
	Title     string
	StartTime string
	EndTime   string
	Location  string
	Cost      float64
}

// Confirm sets the confirmed flag on the activity with the given ID.
// Confirming an activity that does not exist is an error, not a no-op.
func (it Itinerary) Confirm(id string, confirmed bool) error {
	di, ai, ok := it.FindActivity(id)
	if !ok {
		return ErrNotFound
	}
	it[di].Activities[ai].Confirmed = confirmed
	return nil
}

// Modify overwrites the activity's editable fields in place and returns the
// updated activity.
func (it Itinerary) Modify(id string, u Update) (*Activity, error) {
	di, ai, ok := it.FindActivity(id)
	if !ok {
		return nil, ErrNotFound
	}
	a := &it[di].Activities[ai]
	a.Title = u.Title
	a.StartTime = u.StartTime
	a.EndTime = u.EndTime
	a.Location = u.Location
	a.Cost = u.Cost
	if a.Cost < 0 {
		a.Cost = 0
	}
	return a, nil
}

// Delete removes the activity from whichever day contains it. Deletion is
// idempotent: a missing ID reports false but is not an error.
func (it Itinerary) Delete(id string) bool {
	di, ai, ok := it.FindActivity(id)
	if !ok {
		return false
	}
	day := &it[di]
	day.Activities = append(day.Activities[:ai], day.Activities[ai+1:]...)
	return true
}

// Add appends a new activity to the day whose date matches exactly. The
// caller supplies the identifier via ids so the itinerary-wide uniqueness
// strategy stays in one place.
func (it Itinerary) Add(a Activity, dayDate string, ids IDFunc) (*Activity, error) {
	if ids == nil {
		ids = RandomIDs()
	}
	for di := range it {
		if it[di].Date != dayDate {
			continue
		}
		if a.Title == "" {
			a.Title = placeholderTitle
		}
		if a.StartTime == "" {
			a.StartTime = "TBD"
		}
		if a.EndTime == "" {
			a.EndTime = "TBD"
		}
		if a.Location == "" {
			a.Location = it[di].Location
		}
		if a.Cost < 0 {
			a.Cost = 0
		}
		a.ID = ids()
		for {
			if _, _, exists := it.FindActivity(a.ID); !exists {
				break
			}
			a.ID = ids()
		}
		it[di].Activities = append(it[di].Activities, a)
		return &it[di].Activities[len(it[di].Activities)-1], nil
	}
	return nil, ErrNotFound
}

// SaveTodos attaches a to-do list and confirmation flag to the activity.
func (it Itinerary) SaveTodos(id string, todos []Todo, confirmed bool) error {
	di, ai, ok := it.FindActivity(id)
	if !ok {
		return ErrNotFound
	}
	a := &it[di].Activities[ai]
	a.Todos = todos
	a.Confirmed = confirmed
	return nil
}
