// Package sessions provides the calendar session report module.
package sessions

import (
	"bayview_dashboard_backend/internal/http"
	"bayview_dashboard_backend/internal/sessions/client"
	"bayview_dashboard_backend/internal/sessions/handler"
	"bayview_dashboard_backend/internal/sessions/service"
	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/logger"
)

// Module represents the sessions domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new sessions module with all dependencies wired.
func NewModule(cfg config.CalendarConfig, log *logger.Logger) *Module {
	c := client.New(cfg.GetCalendarAPIKey(), log.WithComponent("calendar"))
	svc := service.New(c, cfg, log.WithComponent("sessions"))
	h := handler.New(svc)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "sessions"
}

// RegisterRoutes registers the module's routes under /api/sessions.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	sessions := ctx.API.Group("/sessions")
	m.handler.RegisterRoutes(sessions)
}

// Compile-time check that Module implements http.Module.
var _ http.Module = (*Module)(nil)
