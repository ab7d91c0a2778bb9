// README: Event handlers: confirm, modify, delete, add, todos.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/modules/itinerary"
	"tripwise/internal/session"
)

type EventHandler struct {
	sessions *session.Manager
	ids      itinerary.IDFunc
}

func NewEventHandler(sessions *session.Manager) *EventHandler {
	return &EventHandler{sessions: sessions, ids: itinerary.RandomIDs()}
}

// withItinerary runs fn against the locked session state, requiring an
// itinerary to exist. fn returns the success body; it is sent only after
// the mutated state has been persisted, so a failed save surfaces as an
// error response rather than a success for a mutation that never stuck.
func (h *EventHandler) withItinerary(c *gin.Context, fn func(state *session.State) (gin.H, error)) {
	token := sessionToken(c)
	unlock := h.sessions.Lock(token)
	defer unlock()

	state, err := h.sessions.Load(c.Request.Context(), token)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !state.HasItinerary() {
		writeError(c, http.StatusNotFound, "no itinerary found")
		return
	}
	body, err := fn(state)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if err := h.sessions.Save(c.Request.Context(), token, state); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

type confirmReq struct {
	Confirmed *bool `json:"confirmed"`
}

// Confirm handles POST /api/trip/event/:id/confirm. Confirming an unknown
// activity is NotFound rather than a silent success.
func (h *EventHandler) Confirm(c *gin.Context) {
	id := c.Param("id")
	var req confirmReq
	_ = c.ShouldBindJSON(&req) // body is optional; default is confirmed=true
	confirmed := req.Confirmed == nil || *req.Confirmed

	h.withItinerary(c, func(state *session.State) (gin.H, error) {
		if err := state.TripEvents.Confirm(id, confirmed); err != nil {
			return nil, err
		}
		return gin.H{"success": true, "event_id": id, "confirmed": confirmed}, nil
	})
}

type modifyReq struct {
	Title     *string  `json:"title"`
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
	Location  *string  `json:"location"`
	Cost      *float64 `json:"cost"`
}

func (r modifyReq) update() (itinerary.Update, error) {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s", itinerary.ErrValidation, name)
	}
	switch {
	case r.Title == nil:
		return itinerary.Update{}, missing("title")
	case r.StartTime == nil:
		return itinerary.Update{}, missing("start_time")
	case r.EndTime == nil:
		return itinerary.Update{}, missing("end_time")
	case r.Location == nil:
		return itinerary.Update{}, missing("location")
	case r.Cost == nil:
		return itinerary.Update{}, missing("cost")
	}
	return itinerary.Update{
		Title:     *r.Title,
		StartTime: *r.StartTime,
		EndTime:   *r.EndTime,
		Location:  *r.Location,
		Cost:      *r.Cost,
	}, nil
}

// Modify handles POST /api/trip/event/:id/modify. The request must carry the
// complete editable field set; exactly those five fields are overwritten.
func (h *EventHandler) Modify(c *gin.Context) {
	id := c.Param("id")
	var req modifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	u, err := req.update()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.withItinerary(c, func(state *session.State) (gin.H, error) {
		modified, err := state.TripEvents.Modify(id, u)
		if err != nil {
			return nil, err
		}
		return gin.H{"success": true, "modifiedEvent": modified}, nil
	})
}

// Delete handles DELETE /api/trip/event/:id/delete. Deleting an ID that is
// already gone succeeds; only a missing itinerary is an error.
func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.withItinerary(c, func(state *session.State) (gin.H, error) {
		state.TripEvents.Delete(id)
		return gin.H{"success": true}, nil
	})
}

type addReq struct {
	Title     *string  `json:"title"`
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
	Location  *string  `json:"location"`
	Cost      *float64 `json:"cost"`
	DayDate   *string  `json:"day_date"`
}

// Add handles POST /api/trip/event/add, appending a fresh activity to the
// day whose date matches exactly.
func (h *EventHandler) Add(c *gin.Context) {
	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	required := []struct {
		name    string
		missing bool
	}{
		{"title", req.Title == nil},
		{"start_time", req.StartTime == nil},
		{"end_time", req.EndTime == nil},
		{"location", req.Location == nil},
		{"cost", req.Cost == nil},
		{"day_date", req.DayDate == nil},
	}
	for _, f := range required {
		if f.missing {
			writeError(c, http.StatusBadRequest, fmt.Sprintf("missing field: %s", f.name))
			return
		}
	}

	activity := itinerary.Activity{
		Title:     *req.Title,
		StartTime: *req.StartTime,
		EndTime:   *req.EndTime,
		Location:  *req.Location,
		Cost:      *req.Cost,
	}

	h.withItinerary(c, func(state *session.State) (gin.H, error) {
		added, err := state.TripEvents.Add(activity, *req.DayDate, h.ids)
		if err != nil {
			return nil, fmt.Errorf("no day with date %s: %w", *req.DayDate, err)
		}
		return gin.H{"success": true, "newEvent": added}, nil
	})
}

type todosReq struct {
	ActivityID     string           `json:"activityId"`
	Todos          []itinerary.Todo `json:"todos"`
	EventConfirmed bool             `json:"eventConfirmed"`
}

// SaveTodos handles POST /api/trip/todos.
func (h *EventHandler) SaveTodos(c *gin.Context) {
	var req todosReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ActivityID == "" {
		writeError(c, http.StatusBadRequest, "missing field: activityId")
		return
	}

	h.withItinerary(c, func(state *session.State) (gin.H, error) {
		if err := state.TripEvents.SaveTodos(req.ActivityID, req.Todos, req.EventConfirmed); err != nil {
			return nil, err
		}
		return gin.H{"success": true}, nil
	})
}
