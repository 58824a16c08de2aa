package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/bakehouse-crm/bakehouse-crm/internal/app"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/clients"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/insights"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/leads"
	jobmetrics "github.com/bakehouse-crm/bakehouse-crm/internal/jobs"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/handoff"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/saleslog"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
	"github.com/bakehouse-crm/bakehouse-crm/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	dataStore, err := store.NewRedis(ctx, redisClient)
	if err != nil {
		logger.Error("init store", slog.Any("error", err))
		os.Exit(1)
	}

	clientsRepo := clients.NewRepository(dataStore, logger)
	clientsService := clients.NewService(clientsRepo)
	handoffStore := handoff.NewStore(dataStore)
	leadsRepo := leads.NewRepository(dataStore, logger)
	ordersService := orders.NewService(orders.NewRepository(dataStore, logger), clientsRepo, handoffStore, shared.NewRedisSequencer(redisClient))
	salesService := saleslog.NewService(saleslog.NewRepository(dataStore, logger), clientsService)
	insightsService := insights.NewService(leadsRepo, ordersService, salesService, redisClient, logger)

	metrics := jobmetrics.NewMetrics(nil)
	warmupJob := insights.NewDashboardWarmupJob(insightsService, logger, metrics)

	warmupTask, err := jobs.NewDashboardWarmupTask()
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDashboardWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "*/10 * * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
