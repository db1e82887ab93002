// Package rentals provides the room-rental domain module.
package rentals

import (
	"bayview_dashboard_backend/internal/http"
	"bayview_dashboard_backend/internal/rentals/handler"
	"bayview_dashboard_backend/internal/rentals/repository"
	"bayview_dashboard_backend/internal/rentals/service"
	"bayview_dashboard_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the rentals domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new rentals module with all dependencies wired.
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
	return "rentals"
}

// RegisterRoutes registers the module's routes under /api/rental.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	rental := ctx.API.Group("/rental")
	m.handler.RegisterRoutes(rental)
}

// Compile-time check that Module implements http.Module.
var _ http.Module = (*Module)(nil)
