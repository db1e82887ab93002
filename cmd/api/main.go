package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "bayview_dashboard_backend/internal/http"
	"bayview_dashboard_backend/internal/http/router"
	"bayview_dashboard_backend/internal/leads"
	"bayview_dashboard_backend/internal/rentals"
	"bayview_dashboard_backend/internal/reporting"
	reportinghandler "bayview_dashboard_backend/internal/reporting/handler"
	"bayview_dashboard_backend/internal/scheduler"
	"bayview_dashboard_backend/internal/sessions"
	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/db"
	"bayview_dashboard_backend/platform/logger"
	"bayview_dashboard_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	val := validator.New()

	refreshEnqueuer, closeEnqueuer := initRefreshEnqueuer(cfg, log)
	if closeEnqueuer != nil {
		defer closeEnqueuer()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(pool, val)
	rentalsModule := rentals.NewModule(pool, val)
	sessionsModule := sessions.NewModule(cfg, log)

	reportingModule, err := reporting.NewModule(cfg, leadsModule.Service, rentalsModule.Service, refreshEnqueuer, log)
	if err != nil {
		log.Error("failed to initialize reporting module", "error", err)
		panic("failed to initialize reporting module: " + err.Error())
	}
	defer func() { _ = reportingModule.Close() }()

	// Warm the document and keep it fresh for the life of the process.
	reportingModule.Service.EnsureLoaded(ctx)
	go reportingModule.Service.RunPeriodic(ctx, cfg.RefreshInterval)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			reportingModule,
			leadsModule,
			rentalsModule,
			sessionsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRefreshEnqueuer wires the asynq client when Redis is configured, so a
// manual refresh also reaches worker deployments.
func initRefreshEnqueuer(cfg *config.Config, log *logger.Logger) (reportinghandler.RefreshEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; refresh queue disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize refresh queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
