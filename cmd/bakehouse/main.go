package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/bakehouse-crm/bakehouse-crm/internal/app"
	"github.com/bakehouse-crm/bakehouse-crm/internal/auth"
	"github.com/bakehouse-crm/bakehouse-crm/internal/billing/invoices"
	"github.com/bakehouse-crm/bakehouse-crm/internal/catalog/products"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/clients"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/insights"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/leads"
	"github.com/bakehouse-crm/bakehouse-crm/internal/observability"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/handoff"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/saleslog"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
	"github.com/bakehouse-crm/bakehouse-crm/jobs"
	"github.com/bakehouse-crm/bakehouse-crm/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	dataStore, err := store.NewRedis(ctx, redisClient)
	if err != nil {
		logger.Error("init store", slog.Any("error", err))
		os.Exit(1)
	}

	sessionManager := shared.NewSessionManager(redisClient, "bakehouse_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	sequencer := shared.NewRedisSequencer(redisClient)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	var pdfClient *report.Client
	if cfg.GotenbergURL != "" {
		pdfClient = report.NewClient(cfg.GotenbergURL)
		if err := pdfClient.Ping(ctx); err != nil {
			logger.Warn("gotenberg ping", slog.Any("error", err))
		}
	}

	authRepo := auth.NewRepository(dataStore, logger)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager)

	clientsRepo := clients.NewRepository(dataStore, logger)
	clientsService := clients.NewService(clientsRepo)
	clientsHandler := clients.NewHandler(logger, clientsService)

	handoffStore := handoff.NewStore(dataStore)

	leadsRepo := leads.NewRepository(dataStore, logger)
	leadsService := leads.NewService(leadsRepo, clientsRepo, handoffStore)
	leadsHandler := leads.NewHandler(logger, leadsService, jobsClient, cfg.InquiryNotifyTo)

	ordersRepo := orders.NewRepository(dataStore, logger)
	ordersService := orders.NewService(ordersRepo, clientsRepo, handoffStore, sequencer)
	ordersHandler := orders.NewHandler(logger, ordersService)

	salesRepo := saleslog.NewRepository(dataStore, logger)
	salesService := saleslog.NewService(salesRepo, clientsService)
	salesHandler := saleslog.NewHandler(logger, salesService)

	invoicesRepo := invoices.NewRepository(dataStore, logger)
	invoicesService := invoices.NewService(invoicesRepo, ordersRepo, sequencer, pdfClient)
	invoicesHandler := invoices.NewHandler(logger, invoicesService)

	productsRepo := products.NewRepository(dataStore, logger)
	productsService := products.NewService(productsRepo)
	productsHandler := products.NewHandler(logger, productsService)

	insightsService := insights.NewService(leadsRepo, ordersService, salesService, redisClient, logger)
	insightsHandler := insights.NewHandler(logger, insightsService)

	if err := productsService.Seed(ctx); err != nil {
		logger.Error("seed catalog", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.OwnerPassword != "" {
		if err := authService.SeedOwner(ctx, cfg.OwnerEmail, cfg.OwnerPassword); err != nil {
			logger.Error("seed owner", slog.Any("error", err))
			os.Exit(1)
		}
	}

	go insightsService.WatchCollections(ctx, dataStore)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		SessionManager:  sessionManager,
		CSRFManager:     csrfManager,
		AuthHandler:     authHandler,
		LeadsHandler:    leadsHandler,
		ClientsHandler:  clientsHandler,
		InsightsHandler: insightsHandler,
		OrdersHandler:   ordersHandler,
		SalesLogHandler: salesHandler,
		InvoicesHandler: invoicesHandler,
		ProductsHandler: productsHandler,
		JobsHandler:     jobsHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
