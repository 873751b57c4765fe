package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/macseguridad/flota-backend/internal/etl"
	"github.com/macseguridad/flota-backend/internal/sink"
	"github.com/macseguridad/flota-backend/pkg/config"
	"github.com/macseguridad/flota-backend/pkg/doctree"
	"github.com/macseguridad/flota-backend/pkg/etlerrors"
	"github.com/macseguridad/flota-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "etl"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "etl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"csv_dir":  cfg.ETL.CSVDir,
		"docs_dir": cfg.ETL.DocsRoot,
	})

	s, err := openSink(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap sink", err)
		os.Exit(1)
	}
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			logg.Error(ctx, "error closing sink", err)
		}
	}()

	pipeline := etl.New(cfg.ETL, logg, doctree.NewOSTree(cfg.ETL.DocsRoot), s)
	if _, err := pipeline.Run(ctx); err != nil {
		if etlerrors.IsFatal(err) {
			logg.Error(ctx, "etl run aborted", err)
			os.Exit(1)
		}
		logg.Warn(ctx, "etl run finished with partial write failures")
	}
}

func openSink(ctx context.Context, cfg *config.Config, logg *logger.Logger) (sink.Sink, error) {
	if cfg.FeatureFlags.UseSQLite {
		return sink.NewSQLite(cfg.FeatureFlags.SQLitePath, logg)
	}
	return sink.NewMongo(ctx, cfg.Mongo, logg)
}
