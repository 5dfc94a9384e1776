package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/koperasi-erp/koperasi-erp/internal/app"
	"github.com/koperasi-erp/koperasi-erp/internal/masterdata/products"
	"github.com/koperasi-erp/koperasi-erp/internal/masterdata/suppliers"
	"github.com/koperasi-erp/koperasi-erp/internal/platform/db"
	"github.com/koperasi-erp/koperasi-erp/internal/purchasing"
	"github.com/koperasi-erp/koperasi-erp/internal/stockopname"
	"github.com/koperasi-erp/koperasi-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	productsRepo := products.NewRepository(dbpool)
	purchasingRepo := purchasing.NewRepository(dbpool)
	purchasingService := purchasing.NewService(
		purchasingRepo,
		suppliers.NewRepository(dbpool),
		productsRepo,
	)
	refreshJob := jobs.NewSettlementRefreshJob(purchasingService, logger)

	opnameService := stockopname.NewService(stockopname.NewRepository(dbpool), productsRepo)
	recountJob := jobs.NewStockRecountJob(opnameService, logger)

	refreshTask, err := jobs.NewSettlementRefreshTask("nightly")
	if err != nil {
		logger.Error("build settlement refresh task", slog.Any("error", err))
		os.Exit(1)
	}
	recountTask, err := jobs.NewStockRecountTask("nightly")
	if err != nil {
		logger.Error("build stock recount task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskSettlementRefresh, Handler: refreshJob.Handle},
			{Type: jobs.TaskStockRecount, Handler: recountJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.SettlementCron, Task: refreshTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.RecountCron, Task: recountTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
