package scheduler

import (
	"context"
	"fmt"

	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Refresher rebuilds the dashboard document.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	refresher Refresher
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, refresher Refresher, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		// Refreshes rebuild the same document, so running them in
		// parallel only wastes sheet fetches.
		Concurrency: 1,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		refresher: refresher,
		log:       log,
	}

	mux.HandleFunc(TaskDashboardRefresh, w.handleDashboardRefresh)

	return w, nil
}

func (w *Worker) handleDashboardRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDashboardRefreshPayload(task)
	if err != nil {
		return err
	}

	w.log.Info("dashboard refresh task", "trigger", payload.Trigger, "requested_at", payload.RequestedAt)
	if err := w.refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("dashboard refresh failed: %w", err)
	}
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
