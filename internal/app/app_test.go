package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecli/internal/config"
	"tradecli/internal/infrastructure"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = filepath.Join(dir, "logs", "app.log")
	cfg.Telemetry.MetricsTextfile = filepath.Join(dir, "metrics", "tradecli.prom")
	return cfg
}

func TestNewApplicationWithConfig(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	cfg := testConfig(t)
	cfg.Analysis.CodeColumn = "HSCode"

	application, err := NewApplicationWithConfig(cfg)
	require.NoError(t, err)

	assert.NotNil(t, application.Logger)
	assert.NotNil(t, application.Paths)
	assert.NotNil(t, application.Metrics)
	assert.Equal(t, "HSCode", application.Analysis.Options().CodeColumn)

	require.NoError(t, application.Shutdown(context.Background()))

	_, err = os.Stat(cfg.Telemetry.MetricsTextfile)
	assert.NoError(t, err, "metrics textfile is written on shutdown")

	content, err := os.ReadFile(cfg.Logging.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Application starting")
}

func TestNewApplicationWithConfig_BadTelemetry(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	cfg := testConfig(t)
	cfg.Telemetry.TraceExporter = "zipkin"

	_, err := NewApplicationWithConfig(cfg)
	assert.Error(t, err)
}
