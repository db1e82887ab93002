// Package scheduler runs the periodic dashboard refresh through asynq: a
// client enqueues refresh tasks, a periodic scheduler emits them on an
// interval, and a worker executes them.
package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskDashboardRefresh = "dashboard.refresh"

// DashboardRefreshPayload records why the refresh was requested.
type DashboardRefreshPayload struct {
	RequestedAt string `json:"requestedAt"`
	Trigger     string `json:"trigger"`
}

func NewDashboardRefreshTask(trigger string) (*asynq.Task, error) {
	data, err := json.Marshal(DashboardRefreshPayload{
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
		Trigger:     trigger,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardRefresh, data), nil
}

func ParseDashboardRefreshPayload(task *asynq.Task) (DashboardRefreshPayload, error) {
	var payload DashboardRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DashboardRefreshPayload{}, err
	}
	return payload, nil
}
