// README: Base handler utilities (JSON helpers, error mapping, session access).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/http/middleware"
	"tripwise/internal/modules/assist"
	"tripwise/internal/modules/itinerary"
	"tripwise/internal/modules/suggestion"
)

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// writeServiceError maps module sentinel errors onto the HTTP taxonomy:
// validation 400, not-found 404, upstream/generation failures 500. The
// error text is user-visible so generation failures surface a reason.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, itinerary.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, itinerary.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, itinerary.ErrGeneration),
		errors.Is(err, suggestion.ErrGeneration),
		errors.Is(err, suggestion.ErrDuplicate),
		errors.Is(err, suggestion.ErrWrongLocation),
		errors.Is(err, assist.ErrUpstream):
		writeError(c, http.StatusInternalServerError, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func sessionToken(c *gin.Context) string {
	return middleware.Token(c)
}
