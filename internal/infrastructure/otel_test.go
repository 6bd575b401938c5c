package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"tradecli/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestOTelInitialization tests OpenTelemetry initialization with defaults
func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(nil, testLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	// Tracing is off by default but a tracer is still available
	assert.Nil(t, providers.TracerProvider)
	require.NotNil(t, providers.Tracer)
	_, span := providers.Tracer.Start(context.Background(), "noop")
	assert.False(t, span.IsRecording())
	span.End()

	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelStdoutTracing(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.TraceWriter = &buf

	providers, err := InitializeOTel(cfg, testLogger())
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "analysis.aggregate")
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "analysis.aggregate")
	assert.Contains(t, buf.String(), "boom")
}

func TestOTelTraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "trace.json")
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.TraceFile = path

	providers, err := InitializeOTel(cfg, testLogger())
	require.NoError(t, err)

	_, span := providers.Tracer.Start(context.Background(), "analysis.save")
	span.End()
	require.NoError(t, providers.Shutdown(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "analysis.save")
}

func TestOTelUnsupportedExporter(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "otlp"

	_, err := InitializeOTel(cfg, testLogger())
	assert.Error(t, err)
}

func TestOTelConfigFromConfig(t *testing.T) {
	telemetry := config.Default().Telemetry
	telemetry.TraceExporter = "stdout"
	telemetry.TraceFile = "/tmp/trace.json"

	cfg := OTelConfigFromConfig(telemetry)
	assert.Equal(t, "tradecli", cfg.ServiceName)
	assert.Equal(t, "stdout", cfg.TraceExporter)
	assert.Equal(t, "/tmp/trace.json", cfg.TraceFile)
	assert.Equal(t, 1.0, cfg.SampleRatio)
}

func TestAnalysisMetrics_Textfile(t *testing.T) {
	providers, err := InitializeOTel(nil, testLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := NewAnalysisMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordFlow(ctx, "export", 120, 7)
	metrics.RecordSheets(ctx, 4)
	metrics.RecordRun(ctx, 250*time.Millisecond, nil)
	metrics.RecordRun(ctx, time.Second, errors.New("failed"))

	path := filepath.Join(t.TempDir(), "metrics", "tradecli.prom")
	require.NoError(t, providers.WriteMetricsTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "trade_analysis_runs_total")
	assert.Contains(t, text, "trade_rows_loaded_total")
	assert.Contains(t, text, `flow="export"`)
	assert.Contains(t, text, "trade_analysis_errors_total")
}

func TestAnalysisMetrics_NilSafe(t *testing.T) {
	var metrics *AnalysisMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		metrics.RecordRun(ctx, time.Second, nil)
		metrics.RecordFlow(ctx, "import", 1, 1)
		metrics.RecordSheets(ctx, 1)
	})
}
