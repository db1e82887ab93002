package scheduler

import (
	"testing"
)

func TestDashboardRefreshTaskRoundTrip(t *testing.T) {
	task, err := NewDashboardRefreshTask("manual")
	if err != nil {
		t.Fatalf("NewDashboardRefreshTask: %v", err)
	}
	if task.Type() != TaskDashboardRefresh {
		t.Fatalf("task type = %q, want %q", task.Type(), TaskDashboardRefresh)
	}

	payload, err := ParseDashboardRefreshPayload(task)
	if err != nil {
		t.Fatalf("ParseDashboardRefreshPayload: %v", err)
	}
	if payload.Trigger != "manual" {
		t.Fatalf("trigger = %q, want manual", payload.Trigger)
	}
	if payload.RequestedAt == "" {
		t.Fatalf("requestedAt should be set")
	}
}
