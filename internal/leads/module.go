// Package leads provides the leads domain module.
package leads

import (
	"bayview_dashboard_backend/internal/http"
	"bayview_dashboard_backend/internal/leads/handler"
	"bayview_dashboard_backend/internal/leads/repository"
	"bayview_dashboard_backend/internal/leads/service"
	"bayview_dashboard_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the leads domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new leads module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes registers the module's routes under /api/leads.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	leads := ctx.API.Group("/leads")
	m.handler.RegisterRoutes(leads)
}

// Compile-time check that Module implements http.Module.
var _ http.Module = (*Module)(nil)
