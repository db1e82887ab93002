package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bayview_dashboard_backend/internal/leads"
	"bayview_dashboard_backend/internal/rentals"
	"bayview_dashboard_backend/internal/reporting"
	"bayview_dashboard_backend/internal/scheduler"
	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/db"
	"bayview_dashboard_backend/platform/logger"
	"bayview_dashboard_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The worker consumes dashboard refresh tasks and emits them on the
// configured interval, keeping the Redis copy of the document warm for the
// API instances.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	val := validator.New()

	leadsModule := leads.NewModule(pool, val)
	rentalsModule := rentals.NewModule(pool, val)

	reportingModule, err := reporting.NewModule(cfg, leadsModule.Service, rentalsModule.Service, nil, log)
	if err != nil {
		log.Error("failed to initialize reporting module", "error", err)
		panic("failed to initialize reporting module: " + err.Error())
	}
	defer func() { _ = reportingModule.Close() }()

	periodic, err := scheduler.NewPeriodic(cfg, log)
	if err != nil {
		log.Error("failed to initialize refresh scheduler", "error", err)
		panic("failed to initialize refresh scheduler: " + err.Error())
	}
	go periodic.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, reportingModule.Service, log)
	if err != nil {
		log.Error("failed to initialize refresh worker", "error", err)
		panic("failed to initialize refresh worker: " + err.Error())
	}

	worker.Run(ctx)
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
