package app

import (
	"context"
	"fmt"
	"log/slog"

	"tradecli/internal/config"
	"tradecli/internal/infrastructure"
	"tradecli/internal/services"
	"tradecli/pkg/contracts"
)

// AppName is shown in startup logs and version output
const AppName = "Trade Analysis"

// Application wires configuration, logging, telemetry and the analysis
// service shared by the interactive and batch binaries.
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.AnalysisMetrics
	Analysis      *services.AnalysisService
}

// NewApplication loads configuration from file and environment and builds
// the application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig builds the application from an already loaded
// configuration.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.String("config", cfg.String()))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFromConfig(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewAnalysisMetrics(otelProviders.Meter)
	if err != nil {
		otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create analysis metrics: %w", err)
	}

	analysis := services.NewAnalysisService(
		services.AnalysisOptionsFromConfig(cfg.Analysis),
		otelProviders.Tracer,
		metrics,
		logger,
	)

	return &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		Analysis:      analysis,
	}, nil
}

// Shutdown writes the metrics textfile when one is configured, flushes
// telemetry and closes the log file.
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error

	if path := a.Config.Telemetry.MetricsTextfile; path != "" {
		if err := a.OTelProviders.WriteMetricsTextfile(path); err != nil {
			errs = append(errs, err)
		} else {
			a.Logger.Info("Metrics written", slog.String("path", path))
		}
	}

	if err := a.OTelProviders.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	a.Logger.Info("Application stopped")

	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}
