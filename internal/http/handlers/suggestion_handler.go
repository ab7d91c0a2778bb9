// README: Suggestion handlers: fetch options, select, request alternative.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"tripwise/internal/modules/itinerary"
	"tripwise/internal/modules/suggestion"
	"tripwise/internal/session"
)

type SuggestionHandler struct {
	sessions *session.Manager
	suggest  *suggestion.Service
	planner  *itinerary.Service
}

func NewSuggestionHandler(sessions *session.Manager, suggest *suggestion.Service, planner *itinerary.Service) *SuggestionHandler {
	return &SuggestionHandler{sessions: sessions, suggest: suggest, planner: planner}
}

// tripDays derives the trip length from the stored parameters; a broken
// date range falls back to a short trip rather than failing generation.
func tripDays(params *itinerary.TripParameters) int {
	start, serr := time.Parse("2006-01-02", params.StartDate)
	end, eerr := time.Parse("2006-01-02", params.EndDate)
	if serr != nil || eerr != nil || end.Before(start) {
		return 1
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Fetch handles GET /api/trip/suggestions. Options are generated once per
// planning session and cached in the session state.
func (h *SuggestionHandler) Fetch(c *gin.Context) {
	token := sessionToken(c)
	unlock := h.sessions.Lock(token)
	defer unlock()

	state, err := h.sessions.Load(c.Request.Context(), token)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !state.HasParameters() {
		writeError(c, http.StatusNotFound, "no trip parameters found")
		return
	}

	if state.TripSuggestions == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
		defer cancel()

		options, err := h.suggest.Generate(ctx, state.NaturalInput, *state.TripParameters, tripDays(state.TripParameters))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		state.TripSuggestions = options
		if err := h.sessions.Save(c.Request.Context(), token, state); err != nil {
			writeServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": state.TripSuggestions})
}

type selectReq struct {
	SelectedActivities []suggestion.Option `json:"selected_activities"`
}

// Select handles POST /api/trip/suggestions/select: the chosen options are
// compiled into a committed itinerary that replaces any previous one.
func (h *SuggestionHandler) Select(c *gin.Context) {
	var req selectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.SelectedActivities) == 0 {
		writeError(c, http.StatusBadRequest, "no activities selected")
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
	if !state.HasParameters() {
		writeError(c, http.StatusNotFound, "no trip parameters found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	it, err := h.planner.Compile(ctx, suggestion.Describe(req.SelectedActivities), *state.TripParameters)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	state.TripEvents = it
	if err := h.sessions.Save(c.Request.Context(), token, state); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type alternativeReq struct {
	Rejected            suggestion.Rejected `json:"rejected"`
	PreviousSuggestions []string            `json:"previous_suggestions"`
}

// Alternative handles POST /api/trip/suggestions/alternative. The substitute
// must differ from everything the session has already shown; duplicates and
// off-destination proposals are rejected upstream failures, not results.
func (h *SuggestionHandler) Alternative(c *gin.Context) {
	var req alternativeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Rejected.Title == "" {
		writeError(c, http.StatusBadRequest, "missing field: rejected.title")
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
	if !state.HasParameters() {
		writeError(c, http.StatusNotFound, "no trip parameters found")
		return
	}

	previous := lo.Uniq(append(req.PreviousSuggestions, state.SeenTitles()...))

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	alt, err := h.suggest.Alternative(ctx, req.Rejected, previous, *state.TripParameters)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// Record the substitute against its slot so later duplicate checks see
	// it. When the rejected title matches no stored slot, only the title is
	// remembered; the visible option list must not grow a phantom slot.
	replaced := false
	for i := range state.TripSuggestions {
		if state.TripSuggestions[i].Title == req.Rejected.Title {
			state.TripSuggestions[i].Alternative = alt
			replaced = true
			break
		}
	}
	if !replaced {
		state.ExtraTitles = append(state.ExtraTitles, alt.Title)
	}
	if err := h.sessions.Save(c.Request.Context(), token, state); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alternative": alt})
}
