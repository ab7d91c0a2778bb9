// README: Free-text AI task help handler.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripwise/internal/modules/assist"
)

type AssistHandler struct {
	assist *assist.Service
}

func NewAssistHandler(svc *assist.Service) *AssistHandler {
	return &AssistHandler{assist: svc}
}

type assistReq struct {
	Task string `json:"task"`
}

// TaskHelp handles POST /api/trip/assist.
func (h *AssistHandler) TaskHelp(c *gin.Context) {
	var req assistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Task) == "" {
		writeError(c, http.StatusBadRequest, "missing field: task")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	reply, err := h.assist.TaskHelp(ctx, req.Task)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "response": reply})
}
