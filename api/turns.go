package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hireloop/jobagent/domain"
)

// TurnRequest is the body for POST /v1/sessions/:session_id/turns.
type TurnRequest struct {
	Message string `json:"message"`
}

// RunTurn runs one conversational turn. Degraded replies (language model
// or submission failures) are still 200s; only unknown sessions and
// storage write failures are error statuses.
// POST /v1/sessions/:session_id/turns
func (h *Handler) RunTurn(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	var req TurnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	result, err := h.workflow.Turn(ctx, sessionID, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "session not found; start a new session",
			})
		}
		log.Printf("ERROR: turn failed for %s: %v", sessionID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to persist turn"})
	}
	return c.JSON(http.StatusOK, result)
}
