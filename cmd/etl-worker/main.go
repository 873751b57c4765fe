package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/macseguridad/flota-backend/internal/etl"
	"github.com/macseguridad/flota-backend/internal/sink"
	"github.com/macseguridad/flota-backend/pkg/config"
	"github.com/macseguridad/flota-backend/pkg/doctree"
	"github.com/macseguridad/flota-backend/pkg/etlerrors"
	"github.com/macseguridad/flota-backend/pkg/logger"
)

// The worker re-runs the pipeline on a fixed cadence. Each cycle opens its own
// sink handle so a cluster outage in one cycle does not poison the next.
func main() {
	logg := logger.New(logger.Options{ServiceName: "etl-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "etl-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": cfg.ETL.RunInterval.String(),
	})
	logg.Info(ctx, "starting etl worker")

	if err := run(ctx, cfg, logg); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "etl worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "etl worker shutting down gracefully")
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	interval := cfg.ETL.RunInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	runCycle(ctx, cfg, logg)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			runCycle(ctx, cfg, logg)
		}
	}
}

// runCycle never aborts the worker: a fatal run (unreachable sink) is logged
// and retried on the next tick.
func runCycle(ctx context.Context, cfg *config.Config, logg *logger.Logger) {
	s, err := openSink(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap sink, skipping cycle", err)
		return
	}
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			logg.Error(ctx, "error closing sink", err)
		}
	}()

	pipeline := etl.New(cfg.ETL, logg, doctree.NewOSTree(cfg.ETL.DocsRoot), s)
	if _, err := pipeline.Run(ctx); err != nil {
		if etlerrors.IsFatal(err) {
			logg.Error(ctx, "etl cycle aborted", err)
			return
		}
		logg.Warn(ctx, "etl cycle finished with partial write failures")
	}
}

func openSink(ctx context.Context, cfg *config.Config, logg *logger.Logger) (sink.Sink, error) {
	if cfg.FeatureFlags.UseSQLite {
		return sink.NewSQLite(cfg.FeatureFlags.SQLitePath, logg)
	}
	return sink.NewMongo(ctx, cfg.Mongo, logg)
}
