// Package handler exposes the dashboard document endpoints.
package handler

import (
	"context"
	"net/http"
	"time"

	"bayview_dashboard_backend/internal/reporting/service"
	"bayview_dashboard_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// RefreshEnqueuer hands a refresh request to the worker queue, so separate
// worker deployments rebuild their Redis copy too.
type RefreshEnqueuer interface {
	EnqueueDashboardRefresh(ctx context.Context, trigger string) error
}

type Handler struct {
	svc      *service.Service
	enqueuer RefreshEnqueuer
	log      *logger.Logger
}

// New creates the handler. enqueuer may be nil when no queue is configured;
// refreshes then only run in-process.
func New(svc *service.Service, enqueuer RefreshEnqueuer, log *logger.Logger) *Handler {
	return &Handler{svc: svc, enqueuer: enqueuer, log: log}
}

// RegisterRoutes mounts the dashboard routes directly on the API group; the
// frontend fetches /api/data, not a nested path.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/data", h.getData)
	api.POST("/refresh", h.refresh)
	api.GET("/status", h.status)
}

func (h *Handler) getData(c *gin.Context) {
	h.svc.EnsureLoaded(c.Request.Context())

	data, ts, loaded := h.svc.Snapshot()
	if !loaded {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Still loading data, retry in a few seconds"})
		return
	}

	lastRefresh := "never"
	if !ts.IsZero() {
		lastRefresh = ts.Format(time.RFC3339)
	}
	c.Header("X-Last-Refresh", lastRefresh)
	c.Header("Cache-Control", "public, max-age=60")
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *Handler) refresh(c *gin.Context) {
	if h.enqueuer != nil {
		if err := h.enqueuer.EnqueueDashboardRefresh(c.Request.Context(), "manual"); err != nil {
			// The in-process refresh below still runs.
			h.log.Warn("failed to enqueue refresh task", "error", err)
		}
	}
	ts := h.svc.TriggerRefresh()

	var refreshed any
	if !ts.IsZero() {
		refreshed = ts.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "refreshed": refreshed})
}

func (h *Handler) status(c *gin.Context) {
	_, _, loaded := h.svc.Snapshot()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "loaded": loaded})
}
