// README: Trip handlers: create/regenerate, list events, disruption reschedule.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripwise/internal/modules/itinerary"
	"tripwise/internal/session"
)

// generateTimeout bounds the blocking LLM call. A timeout surfaces as a
// generation failure the client may retry; there is no way to abort the
// upstream call beyond abandoning it.
const generateTimeout = 90 * time.Second

type TripHandler struct {
	sessions *session.Manager
	planner  *itinerary.Service
}

func NewTripHandler(sessions *session.Manager, planner *itinerary.Service) *TripHandler {
	return &TripHandler{sessions: sessions, planner: planner}
}

type createTripReq struct {
	NaturalLanguageInput string `json:"naturalLanguageInput"`
	Budget               int    `json:"budget"`
	PeopleCount          int    `json:"peopleCount"`
	StartDate            string `json:"startDate"`
	EndDate              string `json:"endDate"`
	StartLocation        string `json:"startLocation"`
	EndLocation          string `json:"endLocation"`
	PlanningMode         string `json:"planningMode"`
}

func (r createTripReq) validate() error {
	switch {
	case strings.TrimSpace(r.NaturalLanguageInput) == "":
		return fmt.Errorf("missing field: naturalLanguageInput")
	case r.Budget <= 0:
		return fmt.Errorf("missing or invalid field: budget")
	case r.PeopleCount <= 0:
		return fmt.Errorf("missing or invalid field: peopleCount")
	case strings.TrimSpace(r.StartDate) == "":
		return fmt.Errorf("missing field: startDate")
	case strings.TrimSpace(r.EndDate) == "":
		return fmt.Errorf("missing field: endDate")
	case strings.TrimSpace(r.StartLocation) == "":
		return fmt.Errorf("missing field: startLocation")
	case strings.TrimSpace(r.EndLocation) == "":
		return fmt.Errorf("missing field: endLocation")
	}
	start, serr := time.Parse("2006-01-02", r.StartDate)
	end, eerr := time.Parse("2006-01-02", r.EndDate)
	if serr == nil && eerr == nil && end.Before(start) {
		return fmt.Errorf("invalid field: endDate precedes startDate")
	}
	return nil
}

// Create handles POST /api/trip. The default mode generates and stores a
// full itinerary; planningMode "suggestions" only records the parameters so
// the client can run the suggestion flow first. Either way any previous
// trip state for the session is replaced wholesale.
func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.validate(); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	params := itinerary.TripParameters{
		Budget:        req.Budget,
		PeopleCount:   req.PeopleCount,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
	}

	token := sessionToken(c)
	unlock := h.sessions.Lock(token)
	defer unlock()

	state := &session.State{
		TripParameters: &params,
		NaturalInput:   req.NaturalLanguageInput,
	}

	if req.PlanningMode == "suggestions" {
		if err := h.sessions.Save(c.Request.Context(), token, state); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	it, err := h.planner.Generate(ctx, req.NaturalLanguageInput, params)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	state.TripEvents = it
	if err := h.sessions.Save(c.Request.Context(), token, state); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": itinerary.FlattenEvents(it)})
}

// Events handles GET /api/trip/events.
func (h *TripHandler) Events(c *gin.Context) {
	state, err := h.sessions.Load(c.Request.Context(), sessionToken(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !state.HasItinerary() {
		writeError(c, http.StatusNotFound, "no itinerary found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"events":  itinerary.FlattenEvents(state.TripEvents),
		"summary": itinerary.Summarize(state.TripEvents, state.TripParameters),
	})
}

type disruptionReq struct {
	EventID string `json:"eventId"`
	Details string `json:"details"`
}

// Disruption handles POST /api/trip/disruption: the window of up to three
// activities starting at the affected one (within its day) is sent for
// rescheduling and spliced back over the originals.
func (h *TripHandler) Disruption(c *gin.Context) {
	var req disruptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.EventID == "" || strings.TrimSpace(req.Details) == "" {
		writeError(c, http.StatusBadRequest, "event ID and details are required")
		return
	}

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

	di, ai, ok := state.TripEvents.FindActivity(req.EventID)
	if !ok {
		writeError(c, http.StatusNotFound, "event not found")
		return
	}
	day := &state.TripEvents[di]
	end := ai + 3
	if end > len(day.Activities) {
		end = len(day.Activities)
	}
	window := day.Activities[ai:end]

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	replacements, err := h.planner.Reschedule(ctx, req.Details, window, day.Location)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	adjusted := make([]itinerary.Activity, 0, len(day.Activities)-len(window)+len(replacements))
	adjusted = append(adjusted, day.Activities[:ai]...)
	adjusted = append(adjusted, replacements...)
	adjusted = append(adjusted, day.Activities[end:]...)
	day.Activities = adjusted

	if err := h.sessions.Save(c.Request.Context(), token, state); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updatedEvents": replacements})
}
