package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/auth"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/catalog"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/config"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/inventory"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/journal"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/repository/memory"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/repository/mongodb"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/repository/sheets"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/scheduler"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/server/handlers"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/server/router"
	monitorsvc "github.com/OmAmbre27/smart-inventory-sub000/internal/service/monitor"
	movementsvc "github.com/OmAmbre27/smart-inventory-sub000/internal/service/movements"
	summarysvc "github.com/OmAmbre27/smart-inventory-sub000/internal/service/summary"
	"github.com/OmAmbre27/smart-inventory-sub000/pkg/clients/notifier"
	"github.com/OmAmbre27/smart-inventory-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	movementSinks := []journal.Sink{mongoRepo}
	summarySinks := []summarysvc.Sink{mongoRepo}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		movementSinks = append(movementSinks, sheetsRepo)
		summarySinks = append(summarySinks, sheetsRepo)
		baseLogger.Info("google sheets sync enabled")
	} else {
		baseLogger.Warn("google sheets sync disabled, no spreadsheet configured")
	}

	catalogStore := catalog.NewStore()
	thresholdStore := catalog.NewThresholdStore()
	poStore := memory.NewPurchaseOrderStore()
	hygieneStore := memory.NewHygieneStore()

	ledger := inventory.NewLedger()
	movementJournal := journal.New(baseLogger.Named("journal"), movementSinks...)

	movements := movementsvc.NewService(ledger, catalogStore, catalogStore, catalogStore, movementJournal, mongoRepo, baseLogger.Named("svc.movements"))
	monitor := monitorsvc.NewService(ledger, catalogStore, thresholdStore, baseLogger.Named("svc.monitor"))

	priceLookup := func(productID, outletID string) (float64, bool) {
		return ledger.LatestPurchasePrice(productID, outletID)
	}
	summaries := summarysvc.NewService(movementJournal, poStore, hygieneStore, priceLookup, monitor, baseLogger.Named("svc.summary"), summarySinks...)

	var notifyClient notifier.Client
	if cfg.Notifier.Enabled() {
		notifyClient = notifier.NewClient(cfg.Notifier)
		baseLogger.Info("webhook notifier enabled")
	} else {
		baseLogger.Warn("webhook notifier disabled, alerts and summaries stay local")
	}

	authorizer := auth.NewAuthorizer()
	inventoryHandler := handlers.NewInventoryHandler(ledger, movements, monitor, summaries, thresholdStore, baseLogger.Named("handlers.inventory"))
	catalogHandler := handlers.NewCatalogHandler(catalogStore, poStore, hygieneStore, baseLogger.Named("handlers.catalog"))
	engine := router.New(inventoryHandler, catalogHandler, authorizer, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Reporting, summaries, monitor, catalogStore, notifyClient, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
