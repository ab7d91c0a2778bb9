// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/http/handlers"
	"tripwise/internal/http/middleware"
	"tripwise/internal/modules/assist"
	"tripwise/internal/modules/itinerary"
	"tripwise/internal/modules/suggestion"
	"tripwise/internal/session"
)

type RouterDeps struct {
	Sessions         *session.Manager
	Planner          *itinerary.Service
	Suggestions      *suggestion.Service
	Assist           *assist.Service
	SessionMaxAgeSec int
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.Session(deps.SessionMaxAgeSec))

	tripHandler := handlers.NewTripHandler(deps.Sessions, deps.Planner)
	eventHandler := handlers.NewEventHandler(deps.Sessions)
	suggestionHandler := handlers.NewSuggestionHandler(deps.Sessions, deps.Suggestions, deps.Planner)
	assistHandler := handlers.NewAssistHandler(deps.Assist)

	api := r.Group("/api/trip")
	{
		api.POST("", tripHandler.Create)
		api.GET("/events", tripHandler.Events)
		api.POST("/disruption", tripHandler.Disruption)

		api.POST("/event/:id/confirm", eventHandler.Confirm)
		api.POST("/event/:id/modify", eventHandler.Modify)
		api.DELETE("/event/:id/delete", eventHandler.Delete)
		api.POST("/event/add", eventHandler.Add)
		api.POST("/todos", eventHandler.SaveTodos)

		api.GET("/suggestions", suggestionHandler.Fetch)
		api.POST("/suggestions/select", suggestionHandler.Select)
		api.POST("/suggestions/alternative", suggestionHandler.Alternative)

		api.POST("/assist", assistHandler.TaskHelp)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
