package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/delta-line/line-metrics/internal/causes"
	"github.com/delta-line/line-metrics/internal/core/aggregation"
	corecfg "github.com/delta-line/line-metrics/internal/core/config"
	"github.com/delta-line/line-metrics/internal/core/storage/postgres"
	"github.com/delta-line/line-metrics/internal/migrations"
	"github.com/delta-line/line-metrics/internal/production"
	"github.com/delta-line/line-metrics/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"server", cfg.Server,
		"samples", cfg.Samples,
		"causes", cfg.Causes,
	)

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.QueryTimeoutDuration(),
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	if err := dbAdapter.ValidateSchema(context.Background(), cfg.Samples.Table); err != nil {
		slog.Error("Sample table is not available", "table", cfg.Samples.Table, "error", err)
		os.Exit(1)
	}

	// 3. Initialize metric services
	builder := aggregation.NewQueryBuilder(aggregation.SampleSource{
		Table:           cfg.Samples.Table,
		TimestampColumn: cfg.Samples.TimestampColumn,
		MachineColumn:   cfg.Samples.MachineColumn,
	})
	footageSvc := production.NewFootageService(builder, dbAdapter, cfg.Samples.FootageColumn)
	speedSvc := production.NewSpeedService(builder, dbAdapter, cfg.Samples.SpeedColumn)

	// 4. Initialize causes listing
	causesSvc := causes.NewService(
		postgres.NewCauseAdapter(dbAdapter.DB()),
		cfg.Causes.DefaultLimit,
		cfg.Causes.MaxLimit,
	)

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter, cfg.Server.Mode, cfg.Server.CORSOrigins)
	footageSvc.RegisterRoutes(srv.Engine)
	speedSvc.RegisterRoutes(srv.Engine)
	causesSvc.RegisterRoutes(srv.Engine)

	// 6. Start
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler → triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
