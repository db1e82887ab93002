package scheduler

import (
	"context"
	"fmt"
	"time"

	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Periodic emits a refresh task on the configured interval.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	interval := cfg.GetRefreshInterval()
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{})

	task, err := NewDashboardRefreshTask("interval")
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(fmt.Sprintf("@every %s", interval), task, asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("failed to register refresh schedule: %w", err)
	}

	log.Info("refresh schedule registered", "interval", interval.String())
	return &Periodic{scheduler: scheduler, log: log}, nil
}

func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}

	go func() {
		<-ctx.Done()
		p.scheduler.Shutdown()
	}()

	if err := p.scheduler.Run(); err != nil {
		p.log.Error("refresh scheduler stopped", "error", err)
	}
}
