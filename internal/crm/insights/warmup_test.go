package insights

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"

	jobmetrics "github.com/bakehouse-crm/bakehouse-crm/internal/jobs"
	"github.com/bakehouse-crm/bakehouse-crm/jobs"
)

func TestDashboardWarmupHandle(t *testing.T) {
	f := newFixture(t, true)
	f.seedLeads(t)

	job := NewDashboardWarmupJob(f.svc, slog.Default(), jobmetrics.NewMetrics(prometheus.NewRegistry()))
	task, err := jobs.NewDashboardWarmupTask()
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}

	// The warmed snapshot now serves straight from the cache.
	snap, err := f.svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if snap.TotalLeads != 3 {
		t.Fatalf("total leads = %d, want 3", snap.TotalLeads)
	}
}

func TestDashboardWarmupSkipsRetryOnBadPayload(t *testing.T) {
	f := newFixture(t, false)
	job := NewDashboardWarmupJob(f.svc, slog.Default(), jobmetrics.NewMetrics(prometheus.NewRegistry()))
	task := asynq.NewTask(jobs.TaskDashboardWarmup, []byte("not json"))
	if err := job.Handle(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
