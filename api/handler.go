// Package api provides HTTP handlers for the job-post agent.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hireloop/jobagent/store"
	"github.com/hireloop/jobagent/workflow"
)

// Handler handles HTTP requests.
type Handler struct {
	workflow *workflow.Service
	store    *store.Store
}

// NewHandler creates a new handler.
func NewHandler(wf *workflow.Service, st *store.Store) *Handler {
	return &Handler{
		workflow: wf,
		store:    st,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Session API
	e.POST("/v1/sessions", h.CreateSession)
	e.GET("/v1/sessions", h.ListSessions)
	e.GET("/v1/sessions/:session_id", h.GetSession)
	e.DELETE("/v1/sessions/:session_id", h.DeleteSession)

	// Conversation API
	e.POST("/v1/sessions/:session_id/turns", h.RunTurn)

	// Maintenance API
	e.POST("/internal/sweep", h.SweepExpired)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
