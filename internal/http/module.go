// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterContext carries the route groups modules register themselves on.
type RouterContext struct {
	// API is the /api route group.
	API *gin.RouterGroup
}

// Module is implemented by every HTTP-facing domain module.
type Module interface {
	// Name returns the module name for logging.
	Name() string
	// RegisterRoutes registers the module's routes.
	RegisterRoutes(ctx *RouterContext)
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP server configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness/health checks (e.g., DB ping).
	Health HealthChecker
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
