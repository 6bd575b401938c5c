package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"tradecli/internal/config"
	"tradecli/internal/dataprocessing"
	apperrors "tradecli/internal/errors"
	"tradecli/internal/exporter"
	"tradecli/internal/infrastructure"
	"tradecli/internal/validation"
	"tradecli/pkg/contracts/domain"
)

// AnalysisOptions names the columns an analysis works on
type AnalysisOptions struct {
	CodeColumn       string
	VolatilityColumn string
	VolatilityName   string
}

// DefaultAnalysisOptions groups by Code and measures dollar volatility
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptionsFromConfig(config.Default().Analysis)
}

// AnalysisOptionsFromConfig maps the analysis section of the application config
func AnalysisOptionsFromConfig(cfg config.AnalysisConfig) AnalysisOptions {
	return AnalysisOptions{
		CodeColumn:       cfg.CodeColumn,
		VolatilityColumn: cfg.VolatilityColumn,
		VolatilityName:   cfg.VolatilityName,
	}
}

// FlowResult holds the result tables of one trade flow
type FlowResult struct {
	Flow       domain.TradeFlow
	SourcePath string
	InputRows  int
	Aggregated *dataprocessing.Table
	Volatility *dataprocessing.Table
}

// Results holds the outcome of an analysis run
type Results struct {
	Export      FlowResult
	Import      FlowResult
	CodeColumn  string
	GeneratedAt time.Time
}

// Sheets returns the result tables in workbook order:
// Export Data, Export Volatility, Import Data, Import Volatility.
func (r *Results) Sheets() []exporter.Sheet {
	sheets := make([]exporter.Sheet, 0, 4)
	for _, f := range []FlowResult{r.Export, r.Import} {
		sheets = append(sheets,
			exporter.Sheet{Name: f.Flow.DataSheet(), Table: f.Aggregated},
			exporter.Sheet{Name: f.Flow.VolatilitySheet(), Table: f.Volatility},
		)
	}
	return sheets
}

// Sheet returns the table stored under a sheet name, or nil.
func (r *Results) Sheet(name string) *dataprocessing.Table {
	for _, s := range r.Sheets() {
		if s.Name == name {
			return s.Table
		}
	}
	return nil
}

// AnalysisService runs the trade analysis: load, aggregate, volatility, save
type AnalysisService struct {
	opts      AnalysisOptions
	validator *validation.FileValidator
	workbook  *exporter.WorkbookWriter
	csv       *exporter.CSVWriter
	tracer    trace.Tracer
	metrics   *infrastructure.AnalysisMetrics
	logger    *slog.Logger
}

// NewAnalysisService creates a new analysis service. tracer and metrics may be nil.
func NewAnalysisService(opts AnalysisOptions, tracer trace.Tracer, metrics *infrastructure.AnalysisMetrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}
	defaults := DefaultAnalysisOptions()
	if opts.CodeColumn == "" {
		opts.CodeColumn = defaults.CodeColumn
	}
	if opts.VolatilityColumn == "" {
		opts.VolatilityColumn = defaults.VolatilityColumn
	}
	if opts.VolatilityName == "" {
		opts.VolatilityName = defaults.VolatilityName
	}

	logger = infrastructure.WithComponent(logger, "analysis_service")
	return &AnalysisService{
		opts:      opts,
		validator: validation.NewFileValidator(logger),
		workbook:  exporter.NewWorkbookWriter(logger),
		csv:       exporter.NewCSVWriter(logger),
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Options returns the effective column options
func (s *AnalysisService) Options() AnalysisOptions {
	return s.opts
}

// Run analyses both trade files. Both paths are required; when either is
// empty a MISSING_INPUT error is returned before any file is read.
func (s *AnalysisService) Run(ctx context.Context, exportPath, importPath string) (_ *Results, err error) {
	var missing []string
	if exportPath == "" {
		missing = append(missing, string(domain.TradeFlowExport))
	}
	if importPath == "" {
		missing = append(missing, string(domain.TradeFlowImport))
	}
	if len(missing) > 0 {
		err := apperrors.NewMissingInputError(missing...)
		s.logger.WarnContext(ctx, "Analysis requested without both input files",
			slog.Any("missing", missing))
		return nil, err
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := s.tracer.Start(ctx, "analysis.run")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRun(ctx, time.Since(start), err)
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
	}()

	s.logger.InfoContext(ctx, "Starting trade analysis",
		slog.String("export_path", exportPath),
		slog.String("import_path", importPath),
		slog.String("code_column", s.opts.CodeColumn),
		slog.String("volatility_column", s.opts.VolatilityColumn))

	results := &Results{CodeColumn: s.opts.CodeColumn}

	if results.Export, err = s.runFlow(ctx, domain.TradeFlowExport, exportPath); err != nil {
		return nil, err
	}
	if results.Import, err = s.runFlow(ctx, domain.TradeFlowImport, importPath); err != nil {
		return nil, err
	}
	results.GeneratedAt = time.Now()

	s.logger.InfoContext(ctx, "Trade analysis complete",
		slog.Int("export_groups", results.Export.Aggregated.Len()),
		slog.Int("import_groups", results.Import.Aggregated.Len()),
		slog.Duration("duration", time.Since(start)))

	return results, nil
}

func (s *AnalysisService) runFlow(ctx context.Context, flow domain.TradeFlow, path string) (FlowResult, error) {
	ctx, span := s.tracer.Start(ctx, "analysis."+string(flow),
		trace.WithAttributes(attribute.String("flow", string(flow)), attribute.String("path", path)))
	defer span.End()

	result := FlowResult{Flow: flow, SourcePath: path}

	fail := func(stage string, err error) (FlowResult, error) {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Analysis stage failed",
			slog.String("flow", string(flow)),
			slog.String("stage", stage),
			slog.String("error", err.Error()))
		return FlowResult{}, err
	}

	if err := s.validator.ValidateInputFile(path); err != nil {
		return fail("validate", err)
	}

	raw, err := dataprocessing.LoadTable(path)
	if err != nil {
		return fail("load", err)
	}
	result.InputRows = raw.Len()

	if result.Aggregated, err = dataprocessing.Aggregate(raw, s.opts.CodeColumn); err != nil {
		return fail("aggregate", err)
	}

	if result.Volatility, err = dataprocessing.Volatility(result.Aggregated,
		s.opts.VolatilityColumn, s.opts.VolatilityName, s.opts.CodeColumn); err != nil {
		return fail("volatility", err)
	}

	span.SetAttributes(
		attribute.Int("rows", result.InputRows),
		attribute.Int("groups", result.Aggregated.Len()))
	s.metrics.RecordFlow(ctx, string(flow), result.InputRows, result.Aggregated.Len())

	s.logger.InfoContext(ctx, "Trade flow analysed",
		slog.String("flow", string(flow)),
		slog.Int("rows", result.InputRows),
		slog.Int("groups", result.Aggregated.Len()))

	return result, nil
}

// Save writes results to an .xlsx workbook at path and returns the sheets
// written. Nothing is left at path when saving fails.
func (s *AnalysisService) Save(ctx context.Context, results *Results, path string) ([]string, error) {
	if results == nil {
		return nil, apperrors.NewAppValidationError("no results to save")
	}

	ctx, span := s.tracer.Start(ctx, "analysis.save", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	if err := s.validator.ValidateOutputFile(path, ".xlsx"); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	written, err := s.workbook.Write(path, results.Sheets())
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Failed to save results",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}
	s.metrics.RecordSheets(ctx, len(written))

	return written, nil
}

// SaveCSV writes each non-empty result sheet to <dir>/<base>_<sheet>.csv
func (s *AnalysisService) SaveCSV(ctx context.Context, results *Results, dir, base string) ([]string, error) {
	if results == nil {
		return nil, apperrors.NewAppValidationError("no results to save")
	}
	if base == "" {
		return nil, apperrors.NewAppValidationError("csv base name must not be empty")
	}

	ctx, span := s.tracer.Start(ctx, "analysis.save_csv", trace.WithAttributes(attribute.String("dir", dir)))
	defer span.End()

	if err := s.validator.ValidateOutputDirectory(dir); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	written, err := s.csv.WriteSheets(dir, base, results.Sheets())
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return written, fmt.Errorf("save csv: %w", err)
	}
	s.metrics.RecordSheets(ctx, len(written))

	return written, nil
}
