package handler

import (
	"strconv"

	"bayview_dashboard_backend/internal/sessions/service"
	"bayview_dashboard_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the session report.
type Handler struct {
	svc *service.Service
}

// New creates a new sessions handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetSessions)
}

// GetSessions handles GET /api/sessions
func (h *Handler) GetSessions(c *gin.Context) {
	weeks := 8
	if raw := c.Query("weeks"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			weeks = n
		}
	}

	result, err := h.svc.GetSessions(c.Request.Context(), weeks)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
