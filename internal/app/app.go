package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"oandarates/internal/adapters/cache"
	"oandarates/internal/adapters/httpclient"
	"oandarates/internal/adapters/postgres"
	"oandarates/internal/api"
	"oandarates/internal/classify"
	"oandarates/internal/config"
	"oandarates/internal/platform/db"
	httpserver "oandarates/internal/platform/http"
	"oandarates/internal/present"
	"oandarates/internal/present/handler"
	"oandarates/internal/update"
)

// Run wires the application components, starts the update orchestrator
// and the HTTP server, and blocks until shutdown.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Repositories and caches
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	historyCache, err := cache.NewHistoryCache(snapshotRepo, appCfg.HistoryCache.MaxEntries)
	if err != nil {
		logrus.WithError(err).Error("Failed to create history cache")
		return err
	}
	defer historyCache.Close()

	// Classification tables come from config; order of checks is fixed
	classifier := classify.NewClassifier(appCfg.Categories)

	// External rates client (configurable timeout)
	apiTimeout := time.Duration(appCfg.RatesAPI.TimeoutSeconds) * time.Second
	if apiTimeout <= 0 {
		apiTimeout = 10 * time.Second
	}
	ratesClient := httpclient.NewFinancingRatesClient(&http.Client{Timeout: apiTimeout}, appCfg.RatesAPI.URL)

	// Update machinery
	fetchJob := update.NewFetchJob(ratesClient, snapshotRepo, historyCache, apiTimeout)
	scheduler := update.NewScheduler(appCfg.Scheduler.DailyAt, appCfg.Scheduler.Timezone)
	orchestrator := update.NewOrchestrator(scheduler, fetchJob, snapshotRepo, historyCache, appCfg.Updates.WorkerPoolSize)
	// Ensure the scheduler and workers stop before the DB pool closes
	defer orchestrator.Shutdown()
	orchestrator.Start(ctx)
	logrus.Info("✅ Update orchestrator started")

	// Presenter drains orchestrator messages on a fixed cadence
	presenter := present.NewPresenter(orchestrator, classifier)
	pollInterval := time.Duration(appCfg.Presenter.PollIntervalMs) * time.Millisecond
	go presenter.Run(ctx, pollInterval)

	// Handlers and router
	ratesHandler := handler.NewRatesHandler(presenter)
	router := api.NewRouter(ratesHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop the orchestrator and in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
