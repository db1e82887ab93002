package reporting

import (
	"bayview_dashboard_backend/internal/http"
	"bayview_dashboard_backend/internal/reporting/cache"
	"bayview_dashboard_backend/internal/reporting/handler"
	"bayview_dashboard_backend/internal/reporting/service"
	"bayview_dashboard_backend/internal/sheets"
	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/logger"
)

// Module represents the dashboard reporting module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
	store   *cache.Store
}

// NewModule creates a new reporting module with all dependencies wired. The
// lead and rental sources come from their own modules so the dashboard sees
// the same data the CRUD endpoints manage. enqueuer may be nil.
func NewModule(cfg *config.Config, leads service.LeadSource, rentals service.RentalSource, enqueuer handler.RefreshEnqueuer, log *logger.Logger) (*Module, error) {
	store, err := cache.New(cfg, log.WithComponent("cache"))
	if err != nil {
		return nil, err
	}

	client := sheets.New(cfg, log.WithComponent("sheets"))
	svc := service.New(client, leads, rentals, store, log.WithComponent("reporting"))
	h := handler.New(svc, enqueuer, log.WithComponent("reporting"))

	return &Module{
		handler: h,
		Service: svc,
		store:   store,
	}, nil
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "reporting"
}

// RegisterRoutes registers the dashboard routes on the API root.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	m.handler.RegisterRoutes(ctx.API)
}

// Close releases the cache connection.
func (m *Module) Close() error {
	return m.store.Close()
}

// Compile-time check that Module implements http.Module.
var _ http.Module = (*Module)(nil)
