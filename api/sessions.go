package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hireloop/jobagent/domain"
)

// CreateSessionRequest is the body for POST /v1/sessions.
type CreateSessionRequest struct {
	OwnerID   string `json:"owner_id"`
	OwnerName string `json:"owner_name,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// CreateSession creates a new conversation session.
// POST /v1/sessions
func (h *Handler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.OwnerID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "owner_id is required"})
	}

	session, err := h.workflow.StartSession(ctx, req.OwnerID, req.OwnerName, req.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSession) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "session id already exists"})
		}
		log.Printf("ERROR: failed to create session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
	}
	return c.JSON(http.StatusCreated, session)
}

// GetSession returns a session by id.
// GET /v1/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	session, err := h.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		}
		log.Printf("ERROR: failed to get session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get session"})
	}
	return c.JSON(http.StatusOK, session)
}

// ListSessions returns an owner's sessions, most recently updated first.
// GET /v1/sessions?owner_id=...&limit=...
func (h *Handler) ListSessions(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID := c.QueryParam("owner_id")
	if ownerID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "owner_id is required"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}

	sessions := h.store.ListByOwner(ctx, ownerID, limit)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessions": sessions,
	})
}

// DeleteSession removes a session.
// DELETE /v1/sessions/:session_id
func (h *Handler) DeleteSession(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	deleted := h.store.Delete(ctx, sessionID)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted": deleted,
	})
}

// SweepExpired deletes expired sessions and reports the count.
// POST /internal/sweep
func (h *Handler) SweepExpired(c echo.Context) error {
	ctx := c.Request().Context()
	count := h.store.SweepExpired(ctx)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted": count,
	})
}
