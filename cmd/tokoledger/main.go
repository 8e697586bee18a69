package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tokoledger/tokoledger/internal/app"
	"github.com/tokoledger/tokoledger/internal/catalog"
	"github.com/tokoledger/tokoledger/internal/debt"
	"github.com/tokoledger/tokoledger/internal/expense"
	"github.com/tokoledger/tokoledger/internal/observability"
	"github.com/tokoledger/tokoledger/internal/platform/cache"
	"github.com/tokoledger/tokoledger/internal/platform/db"
	"github.com/tokoledger/tokoledger/internal/procurement"
	"github.com/tokoledger/tokoledger/internal/receivable"
	"github.com/tokoledger/tokoledger/internal/reporting"
	"github.com/tokoledger/tokoledger/internal/sales"
	"github.com/tokoledger/tokoledger/internal/shared"
	"github.com/tokoledger/tokoledger/internal/stock"
	"github.com/tokoledger/tokoledger/internal/supplier"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, dashboard cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	idemStore := shared.NewIdempotencyStore(pool)

	catalogHandler := catalog.NewHandler(logger, catalog.NewService(catalog.NewRepository(pool)))
	supplierHandler := supplier.NewHandler(logger, supplier.NewService(supplier.NewRepository(pool)))
	expenseHandler := expense.NewHandler(logger, expense.NewService(expense.NewRepository(pool)))
	stockHandler := stock.NewHandler(logger, stock.NewService(stock.NewRepository(pool)))
	salesHandler := sales.NewHandler(logger, sales.NewService(sales.NewRepository(pool), idemStore))
	procurementHandler := procurement.NewHandler(logger, procurement.NewService(procurement.NewRepository(pool), idemStore))
	debtHandler := debt.NewHandler(logger, debt.NewService(debt.NewRepository(pool)))
	receivableHandler := receivable.NewHandler(logger, receivable.NewService(receivable.NewRepository(pool)))

	reportCache := reporting.NewCache(redisClient, cfg.DashboardCacheTTL)
	reportingHandler := reporting.NewHandler(logger, reporting.NewService(reporting.NewRepository(pool), reportCache))

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		CatalogHandler:     catalogHandler,
		SupplierHandler:    supplierHandler,
		ExpenseHandler:     expenseHandler,
		StockHandler:       stockHandler,
		SalesHandler:       salesHandler,
		ProcurementHandler: procurementHandler,
		DebtHandler:        debtHandler,
		ReceivableHandler:  receivableHandler,
		ReportingHandler:   reportingHandler,
		Metrics:            metrics,
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
