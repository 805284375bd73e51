package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"mdscli/internal/cache"
	"mdscli/internal/config"
	"mdscli/internal/exporter"
	"mdscli/internal/fetch"
	"mdscli/internal/infrastructure"
	"mdscli/internal/services"
	handlers "mdscli/internal/transport/http"
)

const (
	AppName = "Maryland School Enrollment Service"
	Version = "0.1.0"
)

// Application is the assembled dependency graph.
type Application struct {
	Config     *config.Config
	Paths      *config.Paths
	Logger     *slog.Logger
	Metrics    *infrastructure.Metrics
	Store      *cache.Store
	Pipeline   *fetch.Pipeline
	Enrollment *services.EnrollmentService
	Health     *services.HealthService
	Exporter   *exporter.EnrollmentExporter
	Router     chi.Router
	Server     *http.Server
}

// NewApplication loads configuration and wires every component.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	metrics, err := infrastructure.InitializeMetrics(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	store, err := cache.NewStore(paths.CacheDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	pipeline := fetch.NewPipeline(
		fetch.NewHTTPFetcher(cfg.Sources.RequestTimeout, logger),
		fetch.ExcelReader{},
		fetch.PDFReader{},
		fetch.EnrollmentPlan(cfg.Sources),
		metrics,
		logger,
	)

	app := &Application{
		Config:     cfg,
		Paths:      paths,
		Logger:     logger,
		Metrics:    metrics,
		Store:      store,
		Pipeline:   pipeline,
		Enrollment: services.NewEnrollmentService(pipeline, store, metrics, logger),
		Health:     services.NewHealthService(store, logger),
		Exporter:   exporter.NewEnrollmentExporter(exporter.NewCSVWriter(paths, logger)),
	}

	app.Router = handlers.NewRouter(handlers.RouterConfig{
		Enrollment: app.Enrollment,
		Health:     app.Health,
		Metrics:    metrics.PrometheusHTTP,
		Logger:     logger,
	})
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return infrastructure.CloseLogFile()
}

// ExportYear fetches one year (through the cache) and writes both CSV
// files.
func (a *Application) ExportYear(ctx context.Context, endYear int, refresh bool) error {
	rows, err := a.Enrollment.FetchEnr(ctx, endYear, refresh)
	if err != nil {
		return err
	}
	if err := a.Exporter.ExportWide(endYear, rows); err != nil {
		return err
	}
	records, err := a.Enrollment.FetchEnrTidy(ctx, endYear, false)
	if err != nil {
		return err
	}
	return a.Exporter.ExportTidy(endYear, records)
}
