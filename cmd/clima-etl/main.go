package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	httpadapter "github.com/couchcryptid/clima-metrics-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/clima-metrics-etl/internal/adapter/kafka"
	"github.com/couchcryptid/clima-metrics-etl/internal/adapter/mapbox"
	"github.com/couchcryptid/clima-metrics-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/clima-metrics-etl/internal/config"
	"github.com/couchcryptid/clima-metrics-etl/internal/domain"
	"github.com/couchcryptid/clima-metrics-etl/internal/observability"
	"github.com/couchcryptid/clima-metrics-etl/internal/pipeline"
)

// readinessChecks is ready only when every check passes.
type readinessChecks []sharedobs.ReadinessChecker

func (r readinessChecks) CheckReadiness(ctx context.Context) error {
	for _, c := range r {
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(cfg.EnrichOptions(), geocoder, metrics, logger)

	loader := pipeline.FanoutLoader{writer}
	var snapshots httpadapter.SnapshotReader
	var store *sqlite.Store
	if cfg.SnapshotDBPath != "" {
		store, err = sqlite.Open(cfg.SnapshotDBPath, metrics, logger)
		if err != nil {
			logger.Error("failed to open snapshot store", "path", cfg.SnapshotDBPath, "error", err)
			os.Exit(1)
		}
		loader = append(loader, store)
		snapshots = store
		logger.Info("snapshot store enabled", "path", cfg.SnapshotDBPath)
	}

	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	ready := readinessChecks{p}
	if store != nil {
		ready = append(ready, store)
	}
	api := httpadapter.NewReadingsAPI(transformer, snapshots, metrics, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, api, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("snapshot store close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
