package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bayview_dashboard_backend/internal/rentals/service"
	"bayview_dashboard_backend/internal/rentals/transport"
	"bayview_dashboard_backend/platform/httpkit"
	"bayview_dashboard_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid entry id"
)

// Handler handles HTTP requests for rental entries.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new rentals handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the rental routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/week", h.ListByWeek)
	rg.GET("/recent", h.ListRecent)
	rg.GET("/weeks", h.ListWeeks)
	rg.POST("/week/delete", h.DeleteWeek)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}

// Create handles POST /api/rental. The same endpoint accepts a single entry
// or a whole week of entries, selected by the presence of an "entries" list.
func (h *Handler) Create(c *gin.Context) {
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var probe struct {
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if len(probe.Entries) > 0 {
		var req transport.CreateBulkRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		if err := h.val.Struct(req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
			return
		}
		result, err := h.svc.CreateBulk(c.Request.Context(), req)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.JSON(c, http.StatusCreated, result)
		return
	}

	var req transport.CreateEntryRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListByWeek handles GET /api/rental/week
func (h *Handler) ListByWeek(c *gin.Context) {
	weekStart := c.Query("week_start")
	if weekStart == "" {
		httpkit.Error(c, http.StatusBadRequest, "week_start required", nil)
		return
	}

	result, err := h.svc.ListByWeek(c.Request.Context(), weekStart, c.Query("week_end"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListRecent handles GET /api/rental/recent
func (h *Handler) ListRecent(c *gin.Context) {
	weeks := 12
	if raw := c.Query("weeks"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			weeks = n
		}
	}

	result, err := h.svc.ListRecent(c.Request.Context(), weeks)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListWeeks handles GET /api/rental/weeks
func (h *Handler) ListWeeks(c *gin.Context) {
	result, err := h.svc.ListWeeks(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update handles PUT /api/rental/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete handles DELETE /api/rental/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.Delete(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteWeek handles POST /api/rental/week/delete
func (h *Handler) DeleteWeek(c *gin.Context) {
	var req transport.DeleteWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.DeleteWeek(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
