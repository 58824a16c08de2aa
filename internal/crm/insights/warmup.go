package insights

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/bakehouse-crm/bakehouse-crm/internal/jobs"
	"github.com/bakehouse-crm/bakehouse-crm/jobs"
)

var defaultWarmupMetrics = jobmetrics.NewMetrics(nil)

// DashboardWarmupJob pre-computes the insights snapshot so the first
// dashboard hit after a quiet period stays fast.
type DashboardWarmupJob struct {
	Insights *Service
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
	clock    func() time.Time
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(insightsSvc *Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *DashboardWarmupJob {
	return &DashboardWarmupJob{
		Insights: insightsSvc,
		Logger:   logger,
		Metrics:  metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Insights == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload jobs.DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(jobs.TaskDashboardWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	start := j.now()

	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	snap, err := j.Insights.Refresh(warmCtx)
	if err != nil {
		resultErr = err
		logger.Error("dashboard warmup", slog.Any("error", err))
		return resultErr
	}

	logger.Info("completed dashboard warmup",
		slog.Int("total_leads", snap.TotalLeads),
		slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", jobs.TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", jobs.TaskDashboardWarmup))
}

func (j *DashboardWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultWarmupMetrics
}

func (j *DashboardWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
