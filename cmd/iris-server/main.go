// iris-server runs the lens recommendation service: the decision
// engine behind an HTTP API, with Prometheus metrics and optional
// tracing.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"iris/internal/catalog"
	"iris/internal/config"
	"iris/internal/logging"
	"iris/internal/observability"
	"iris/internal/recommend"
	"iris/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to the service config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obsCfg, err := observability.LoadConfig(cfg.ObservabilityPath)
	if err != nil {
		log.Fatalf("Failed to load observability config: %v", err)
	}

	obsLogger := observability.NewLogger(observability.LogConfig{
		Level:  obsCfg.Logging.Level,
		Format: obsCfg.Logging.Format,
	})
	logger := logging.FromObservabilityWithComponent(obsLogger, "server")

	metrics, err := observability.NewMetricsCollector(obsCfg.Metrics)
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}
	tracer, err := observability.NewTracerProvider(obsCfg.Tracing)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	logger.Info("catalog loaded: %d lenses", cat.Len())

	engine, err := recommend.NewEngine(recommend.Config{
		Catalog:         cat,
		Logger:          logging.FromObservabilityWithComponent(obsLogger, "engine"),
		Metrics:         metrics,
		Pipeline:        observability.NewPipelineMetrics(),
		Tracer:          tracer,
		SignalCacheSize: cfg.Engine.SignalCacheSize,
	})
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	srv, err := server.New(&server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		EnableCORS:   cfg.Server.EnableCORS,
		Debug:        cfg.Server.Debug,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, server.Deps{
		Engine:  engine,
		Catalog: cat,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(srv.Start)
	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return err
		}
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown: %v", err)
		}
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown: %v", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("server stopped")
}

// loadCatalog reads the configured catalog file, falling back to the
// compiled-in lens set when no path is given.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Builtin(), nil
	}
	return catalog.LoadFile(path)
}
