package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/koperasi-erp/koperasi-erp/internal/app"
	"github.com/koperasi-erp/koperasi-erp/internal/installments"
	"github.com/koperasi-erp/koperasi-erp/internal/masterdata/products"
	"github.com/koperasi-erp/koperasi-erp/internal/masterdata/suppliers"
	"github.com/koperasi-erp/koperasi-erp/internal/platform/cache"
	"github.com/koperasi-erp/koperasi-erp/internal/platform/db"
	"github.com/koperasi-erp/koperasi-erp/internal/purchasing"
	"github.com/koperasi-erp/koperasi-erp/internal/shared"
	"github.com/koperasi-erp/koperasi-erp/internal/stockopname"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	submitLock := shared.NewSubmitLock(redisClient, cfg.SubmitLockTTL)

	suppliersRepo := suppliers.NewRepository(dbpool)
	suppliersService := suppliers.NewService(suppliersRepo)
	suppliersHandler := suppliers.NewHandler(logger, suppliersService)

	productsRepo := products.NewRepository(dbpool)
	productsService := products.NewService(productsRepo)
	productsHandler := products.NewHandler(logger, productsService)

	purchasingRepo := purchasing.NewRepository(dbpool)
	purchasingService := purchasing.NewService(purchasingRepo, suppliersRepo, productsRepo)
	purchasingHandler := purchasing.NewHandler(logger, purchasingService, submitLock)

	installmentsRepo := installments.NewRepository(dbpool)
	installmentsService := installments.NewService(installmentsRepo)
	installmentsHandler := installments.NewHandler(logger, installmentsService, submitLock)

	opnameRepo := stockopname.NewRepository(dbpool)
	opnameService := stockopname.NewService(opnameRepo, productsRepo)
	opnameHandler := stockopname.NewHandler(logger, opnameService, submitLock)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		SuppliersHandler:    suppliersHandler,
		ProductsHandler:     productsHandler,
		PurchasingHandler:   purchasingHandler,
		InstallmentsHandler: installmentsHandler,
		StockOpnameHandler:  opnameHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
