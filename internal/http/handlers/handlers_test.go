// README: Handler tests over the full router with a scripted AI provider.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tripwise/internal/ai"
	"tripwise/internal/config"
	httptransport "tripwise/internal/http"
	"tripwise/internal/modules/assist"
	"tripwise/internal/modules/itinerary"
	"tripwise/internal/modules/suggestion"
	"tripwise/internal/session"
)

// scriptedProvider returns canned responses in order, repeating the last one.
type scriptedProvider struct {
	responses []string
	calls     int
}

func (p *scriptedProvider) Complete(_ context.Context, _ ai.Request) (string, error) {
	i := p.calls
	if i >= len(p.responses) {
		i = len(p.responses) - 1
	}
	p.calls++
	return p.responses[i], nil
}

const itineraryResponse = "Here you go!\n```json\n" + `{"days": [
	{"day": 1, "date": "2025-03-14", "location": "Rome", "activities": [
		{"title": "Colosseum tour", "start_time": "9:00 AM", "end_time": "11:00 AM", "cost": 20},
		{"title": "Trastevere dinner", "start_time": "7:30 PM", "end_time": "9:30 PM", "cost": "40"}
	]},
	{"day": 2, "date": "2025-03-15", "location": "Florence", "activities": [
		{"title": "Uffizi", "start_time": "10:00", "end_time": "13:00", "cost": 26}
	]}
]}` + "\n```"

func buildTestRouter(provider ai.Provider) http.Handler {
	return buildTestRouterWithStore(provider, session.NewMemoryStore(time.Minute))
}

func buildTestRouterWithStore(provider ai.Provider, store session.Store) http.Handler {
	gin.SetMode(gin.TestMode)
	aiCfg := config.AIConfig{Model: "test-model", Temperature: 0.7, MaxTokens: 1000}
	sessions := session.NewManager(store)
	return httptransport.NewRouter(httptransport.RouterDeps{
		Sessions:         sessions,
		Planner:          itinerary.NewService(provider, aiCfg),
		Suggestions:      suggestion.NewService(provider, aiCfg),
		Assist:           assist.NewService(provider, aiCfg),
		SessionMaxAgeSec: 60,
	})
}

// client carries the session cookie across requests like a browser would.
type client struct {
	router  http.Handler
	cookies []*http.Cookie
}

func (cl *client) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		cl.cookies = cookies
	}
	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func createTripBody() map[string]any {
	return map[string]any{
		"naturalLanguageInput": "art, history and good food",
		"budget":               800,
		"peopleCount":          2,
		"startDate":            "2025-03-14",
		"endDate":              "2025-03-15",
		"startLocation":        "Paris",
		"endLocation":          "Rome",
	}
}

func TestCreateTripAndFetchEvents(t *testing.T) {
	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{itineraryResponse}})}

	w, resp := cl.do(t, http.MethodPost, "/api/trip", createTripBody())
	if w.Code != http.StatusOK {
		t.Fatalf("create trip status = %d, body %s", w.Code, w.Body.String())
	}
	if resp["success"] != true {
		t.Fatalf("create trip response = %v", resp)
	}
	if events := resp["events"].([]any); len(events) != 3 {
		t.Fatalf("event count = %d, want 3", len(events))
	}

	w, resp = cl.do(t, http.MethodGet, "/api/trip/events", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch events status = %d", w.Code)
	}
	summary := resp["summary"].(map[string]any)
	if summary["destination"] != "Rome" || summary["days"] != float64(2) {
		t.Errorf("summary = %v", summary)
	}
	first := resp["events"].([]any)[0].(map[string]any)
	if first["location"] != "Rome" || first["id"] == "" {
		t.Errorf("first event = %v", first)
	}
}

func TestCreateTripValidation(t *testing.T) {
	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{itineraryResponse}})}

	body := createTripBody()
	delete(body, "budget")
	if w, _ := cl.do(t, http.MethodPost, "/api/trip", body); w.Code != http.StatusBadRequest {
		t.Errorf("missing budget status = %d, want 400", w.Code)
	}

	body = createTripBody()
	body["endDate"] = "2025-03-01"
	if w, _ := cl.do(t, http.MethodPost, "/api/trip", body); w.Code != http.StatusBadRequest {
		t.Errorf("inverted dates status = %d, want 400", w.Code)
	}
}

func TestCreateTripGenerationFailure(t *testing.T) {
	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{"sorry, no JSON here"}})}
	w, resp := cl.do(t, http.MethodPost, "/api/trip", createTripBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if resp["success"] != false || resp["error"] == "" {
		t.Errorf("failure body = %v, want success:false with reason", resp)
	}
}

func TestEventsWithoutItinerary(t *testing.T) {
	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{itineraryResponse}})}
	if w, _ := cl.do(t, http.MethodGet, "/api/trip/events", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestEventLifecycle(t *testing.T) {
	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{itineraryResponse}})}
	_, resp := cl.do(t, http.MethodPost, "/api/trip", createTripBody())
	events := resp["events"].([]any)
	id := events[0].(map[string]any)["id"].(string)

	// Confirm.
	w, resp := cl.do(t, http.MethodPost, "/api/trip/event/"+id+"/confirm", nil)
	if w.Code != http.StatusOK || resp["confirmed"] != true || resp["event_id"] != id {
		t.Fatalf("confirm = %d %v", w.Code, resp)
	}

	// Modify with the complete field set.
	w, resp = cl.do(t, http.MethodPost, "/api/trip/event/"+id+"/modify", map[string]any{
		"title": "Colosseum underground", "start_time": "10:00 AM", "end_time": "12:00 PM",
		"location": "Rome", "cost": 45,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("modify status = %d", w.Code)
	}
	modified := resp["modifiedEvent"].(map[string]any)
	if modified["title"] != "Colosseum underground" || modified["id"] != id {
		t.Errorf("modified event = %v", modified)
	}

	// Modify without a required field.
	w, _ = cl.do(t, http.MethodPost, "/api/trip/event/"+id+"/modify", map[string]any{
		"title": "x", "start_time": "1", "end_time": "2", "location": "Rome",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("modify missing cost status = %d, want 400", w.Code)
	}

	// Save todos.
	w, _ = cl.do(t, http.MethodPost, "/api/trip/todos", map[string]any{
		"activityId":     id,
		"todos":          []map[string]any{{"text": "book tickets", "done": false}},
		"eventConfirmed": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save todos status = %d", w.Code)
	}

	// Add to an existing day, then to a missing one.
	w, resp = cl.do(t, http.MethodPost, "/api/trip/event/add", map[string]any{
		"title": "Duomo climb", "start_time": "15:00", "end_time": "16:30",
		"location": "", "cost": 30, "day_date": "2025-03-15",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add status = %d, body %s", w.Code, w.Body.String())
	}
	if resp["newEvent"].(map[string]any)["location"] != "Florence" {
		t.Errorf("added event did not inherit day location: %v", resp["newEvent"])
	}
	w, _ = cl.do(t, http.MethodPost, "/api/trip/event/add", map[string]any{
		"title": "Ghost", "start_time": "1", "end_time": "2",
		"location": "x", "cost": 1, "day_date": "2025-03-16",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("add to unknown date status = %d, want 404", w.Code)
	}

	// Delete, then confirm the deleted one.
	w, _ = cl.do(t, http.MethodDelete, "/api/trip/event/"+id+"/delete", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w, _ = cl.do(t, http.MethodDelete, "/api/trip/event/"+id+"/delete", nil)
	if w.Code != http.StatusOK {
		t.Errorf("repeat delete status = %d, want idempotent 200", w.Code)
	}
	w, _ = cl.do(t, http.MethodPost, "/api/trip/event/"+id+"/confirm", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("confirm after delete status = %d, want 404", w.Code)
	}
}

// breakingStore starts failing writes after a set number of successful puts.
type breakingStore struct {
	session.Store
	goodPuts int
	puts     int
}

func (s *breakingStore) Put(ctx context.Context, token string, st *session.State) error {
	s.puts++
	if s.puts > s.goodPuts {
		return errors.New("backend unavailable")
	}
	return s.Store.Put(ctx, token, st)
}

func TestEventMutationFailedSaveIsAnError(t *testing.T) {
	store := &breakingStore{Store: session.NewMemoryStore(time.Minute), goodPuts: 1}
	cl := &client{router: buildTestRouterWithStore(&scriptedProvider{responses: []string{itineraryResponse}}, store)}

	_, resp := cl.do(t, http.MethodPost, "/api/trip", createTripBody())
	id := resp["events"].([]any)[0].(map[string]any)["id"].(string)

	w, _ := cl.do(t, http.MethodPost, "/api/trip/event/"+id+"/confirm", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("confirm with failing store status = %d, want 500", w.Code)
	}
	// The body must be a single error object, never a success payload with
	// an error payload tacked on.
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not one JSON object: %v; body %s", err, w.Body.String())
	}
	if body["success"] != false {
		t.Errorf("body = %v, want success:false", body)
	}
	if _, leaked := body["confirmed"]; leaked {
		t.Errorf("success fields leaked into error body: %v", body)
	}

	// The unsaved mutation must not be visible on the next read.
	_, resp = cl.do(t, http.MethodGet, "/api/trip/events", nil)
	first := resp["events"].([]any)[0].(map[string]any)
	if first["isConfirmed"] != false {
		t.Errorf("confirmation persisted despite failed save: %v", first)
	}
}

func TestSuggestionFlow(t *testing.T) {
	suggestionsResponse := `[
		{"title": "Forum walk", "category": "culture", "best_time": "morning", "duration": "2 hours", "cost": 15, "location": "Rome",
		 "alternative": {"title": "Palatine Hill", "category": "culture", "best_time": "morning", "duration": "2 hours", "cost": 18, "location": "Rome"}},
		{"title": "Trastevere dinner", "category": "food", "best_time": "evening", "duration": "2 hours", "cost": 40, "location": "Rome"}
	]`
	alternativeResponse := `{"title": "Capitoline Museums", "category": "culture", "best_time": "morning", "duration": "2 hours", "cost": 16, "location": "Rome"}`

	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{
		suggestionsResponse, alternativeResponse, itineraryResponse,
	}})}

	// Parameters only; no itinerary yet.
	body := createTripBody()
	body["planningMode"] = "suggestions"
	if w, _ := cl.do(t, http.MethodPost, "/api/trip", body); w.Code != http.StatusOK {
		t.Fatalf("create (suggestions mode) failed")
	}
	if w, _ := cl.do(t, http.MethodGet, "/api/trip/events", nil); w.Code != http.StatusNotFound {
		t.Errorf("events before selection status = %d, want 404", w.Code)
	}

	w, resp := cl.do(t, http.MethodGet, "/api/trip/suggestions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch suggestions status = %d", w.Code)
	}
	suggestions := resp["suggestions"].([]any)
	if len(suggestions) != 2 {
		t.Fatalf("suggestion count = %d, want 2", len(suggestions))
	}

	// The session has seen "Palatine Hill" as an alternative already, so a
	// substitute repeating it must be rejected even without the client
	// listing it. Here the model proposes something fresh instead.
	w, resp = cl.do(t, http.MethodPost, "/api/trip/suggestions/alternative", map[string]any{
		"rejected": map[string]any{
			"title": "Forum walk", "category": "culture", "best_time": "morning", "duration": "2 hours",
		},
		"previous_suggestions": []string{"Forum walk", "Trastevere dinner"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("alternative status = %d, body %s", w.Code, w.Body.String())
	}
	if resp["alternative"].(map[string]any)["title"] != "Capitoline Museums" {
		t.Errorf("alternative = %v", resp["alternative"])
	}

	// Select compiles a real itinerary.
	w, _ = cl.do(t, http.MethodPost, "/api/trip/suggestions/select", map[string]any{
		"selected_activities": []map[string]any{
			{"title": "Forum walk", "category": "culture", "best_time": "morning", "duration": "2 hours", "cost": 15, "location": "Rome"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("select status = %d, body %s", w.Code, w.Body.String())
	}
	if w, _ := cl.do(t, http.MethodGet, "/api/trip/events", nil); w.Code != http.StatusOK {
		t.Errorf("events after selection status = %d, want 200", w.Code)
	}
}

func TestAlternativeDuplicateRejected(t *testing.T) {
	duplicate := `{"title": "Trastevere dinner", "category": "food", "best_time": "evening", "duration": "2 hours", "cost": 40, "location": "Rome"}`
	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{duplicate}})}

	body := createTripBody()
	body["planningMode"] = "suggestions"
	cl.do(t, http.MethodPost, "/api/trip", body)

	w, resp := cl.do(t, http.MethodPost, "/api/trip/suggestions/alternative", map[string]any{
		"rejected":             map[string]any{"title": "Forum walk", "category": "culture", "best_time": "morning", "duration": "2 hours"},
		"previous_suggestions": []string{"Forum walk", "Trastevere dinner"},
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("duplicate alternative status = %d, want 500", w.Code)
	}
	if resp["success"] != false {
		t.Errorf("duplicate alternative body = %v", resp)
	}
}

func TestAlternativeForUnknownSlotKeepsOptionCount(t *testing.T) {
	suggestionsResponse := `[
		{"title": "Forum walk", "category": "culture", "best_time": "morning", "duration": "2 hours", "cost": 15, "location": "Rome"},
		{"title": "Trastevere dinner", "category": "food", "best_time": "evening", "duration": "2 hours", "cost": 40, "location": "Rome"}
	]`
	substitute := `{"title": "Capitoline Museums", "category": "culture", "best_time": "morning", "duration": "2 hours", "cost": 16, "location": "Rome"}`

	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{
		suggestionsResponse, substitute, substitute,
	}})}

	body := createTripBody()
	body["planningMode"] = "suggestions"
	cl.do(t, http.MethodPost, "/api/trip", body)
	cl.do(t, http.MethodGet, "/api/trip/suggestions", nil)

	// The rejected title matches no stored slot; the substitute must still
	// be returned without growing the visible option list.
	w, resp := cl.do(t, http.MethodPost, "/api/trip/suggestions/alternative", map[string]any{
		"rejected": map[string]any{"title": "Ghost tour", "category": "culture", "best_time": "morning", "duration": "2 hours"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("alternative status = %d, body %s", w.Code, w.Body.String())
	}
	if resp["alternative"].(map[string]any)["title"] != "Capitoline Museums" {
		t.Fatalf("alternative = %v", resp["alternative"])
	}

	_, resp = cl.do(t, http.MethodGet, "/api/trip/suggestions", nil)
	if n := len(resp["suggestions"].([]any)); n != 2 {
		t.Errorf("suggestion count after off-slot alternative = %d, want 2", n)
	}

	// The off-slot title still counts as seen for duplicate screening.
	w, _ = cl.do(t, http.MethodPost, "/api/trip/suggestions/alternative", map[string]any{
		"rejected": map[string]any{"title": "Forum walk", "category": "culture", "best_time": "morning", "duration": "2 hours"},
	})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("repeated substitute status = %d, want 500", w.Code)
	}
}

func TestSuggestionsWithoutParameters(t *testing.T) {
	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{"{}"}})}
	if w, _ := cl.do(t, http.MethodGet, "/api/trip/suggestions", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDisruption(t *testing.T) {
	reschedule := `[{"title": "Borghese Gallery", "start_time": "2:00 PM", "end_time": "4:00 PM", "cost": 15}]`
	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{itineraryResponse, reschedule}})}
	_, resp := cl.do(t, http.MethodPost, "/api/trip", createTripBody())
	id := resp["events"].([]any)[0].(map[string]any)["id"].(string)

	w, resp := cl.do(t, http.MethodPost, "/api/trip/disruption", map[string]any{
		"eventId": id,
		"details": "the Colosseum is closed for a strike",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("disruption status = %d, body %s", w.Code, w.Body.String())
	}
	updated := resp["updatedEvents"].([]any)
	if len(updated) != 1 || updated[0].(map[string]any)["title"] != "Borghese Gallery" {
		t.Errorf("updatedEvents = %v", updated)
	}
	if updated[0].(map[string]any)["location"] != "Rome" {
		t.Errorf("replacement did not inherit day location: %v", updated[0])
	}

	w, _ = cl.do(t, http.MethodPost, "/api/trip/disruption", map[string]any{"eventId": "nope", "details": "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown event status = %d, want 404", w.Code)
	}
}

func TestAssist(t *testing.T) {
	cl := &client{router: buildTestRouter(&scriptedProvider{responses: []string{"Book at least two weeks ahead and bring ID."}})}

	w, resp := cl.do(t, http.MethodPost, "/api/trip/assist", map[string]any{"task": "book Colosseum tickets"})
	if w.Code != http.StatusOK || resp["response"] == "" {
		t.Fatalf("assist = %d %v", w.Code, resp)
	}

	if w, _ := cl.do(t, http.MethodPost, "/api/trip/assist", map[string]any{"task": "  "}); w.Code != http.StatusBadRequest {
		t.Errorf("empty task status = %d, want 400", w.Code)
	}
}
