package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"landscout/server/config"
	"landscout/server/internal/api"
	"landscout/server/internal/database"
	"landscout/server/internal/geocoding"
	"landscout/server/internal/importer"
	"landscout/server/internal/mockdata"
	"landscout/server/internal/processor"
	"landscout/server/internal/queue"
	"landscout/server/internal/scheduler"
)

func main() {
	// A missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	logger.SetLevel(cfg.Level())

	if cfg.Import.MarketsPath != "" {
		if err := config.LoadMarkets(cfg.Import.MarketsPath); err != nil {
			logger.WithError(err).Fatal("Failed to load markets")
		}
		logger.WithField("path", cfg.Import.MarketsPath).Info("Loaded market list")
	}

	dbPath := cfg.Database.Path
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", dbPath)

	db, err := database.NewDatabase(dbPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	if cfg.Import.SeedMockData {
		if _, err := db.SeedIfEmpty(mockdata.Parcels()); err != nil {
			logger.WithError(err).Fatal("Failed to seed demo parcels")
		}
	}

	if jobs := refreshJobs(cfg, db, logger); len(jobs) > 0 {
		sched := scheduler.NewScheduler(cfg.Import.RefreshInterval, logger, jobs...)
		sched.Start()
		defer sched.Stop()
	}

	handler := api.NewHandler(db, logger)
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: api.NewRouter(handler, cfg.Server.AllowedOrigins),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
}

// refreshJobs returns the background jobs enabled by the configuration: the shapefile
// import followed by the geocoding backfill.
func refreshJobs(cfg *config.Config, db *database.Database, logger *logrus.Logger) []scheduler.Job {
	var jobs []scheduler.Job

	if cfg.Import.ShapefilePath != "" {
		jobs = append(jobs, scheduler.Job{
			Name: "shapefile-import",
			Run: func(ctx context.Context) error {
				return importShapefile(ctx, cfg, db, logger)
			},
		})
	}

	if cfg.Geocoding.Enabled {
		geocoder := geocoding.NewGeocoder(logger, geocoding.Options{
			Endpoint:  cfg.Geocoding.Endpoint,
			CacheDir:  cfg.Geocoding.CacheDir,
			UserAgent: cfg.Geocoding.UserAgent,
			Delay:     time.Duration(cfg.Geocoding.DelayMS) * time.Millisecond,
		})
		jobs = append(jobs, scheduler.Job{
			Name: "geocode-missing",
			Run: func(ctx context.Context) error {
				_, err := geocoding.Backfill(ctx, db, geocoder, logger)
				return err
			},
		})
	}

	return jobs
}

// importShapefile streams the configured shapefile through the batch queue into the store.
func importShapefile(ctx context.Context, cfg *config.Config, db *database.Database, logger *logrus.Logger) error {
	q := queue.NewParcelQueue(cfg.BatchProcessing.QueueSize, logger)
	defer q.Close()

	bp := processor.NewBatchProcessor(db.GetDB(), q, cfg, logger)
	defer bp.Stop()
	bp.Start()
	q.Start()

	imp := importer.NewImporter(q, cfg.BatchProcessing.MaxBatchSize, logger)
	result, err := imp.ImportShapefile(ctx, cfg.Import.ShapefilePath)
	if err != nil {
		return err
	}

	stats := bp.Stats()
	logger.WithFields(logrus.Fields{
		"read":           result.Read,
		"skipped":        result.Skipped,
		"written":        stats.Parcels,
		"failed_batches": stats.FailedBatches,
	}).Info("Parcel import complete")

	if stats.FailedBatches > 0 {
		return fmt.Errorf("%d parcel batches could not be written", stats.FailedBatches)
	}
	return nil
}
