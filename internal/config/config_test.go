package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tradecli/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "Code", cfg.Analysis.CodeColumn)
	assert.Equal(t, "dollar", cfg.Analysis.VolatilityColumn)
	assert.Equal(t, "Volatility", cfg.Analysis.VolatilityName)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "Code", cfg.Analysis.CodeColumn)
	assert.True(t, filepath.IsAbs(cfg.Logging.FilePath), "log path is resolved against the executable")
	assert.Empty(t, cfg.Telemetry.MetricsTextfile)
}

func TestLoadFile_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: debug
  output: console
analysis:
  code_column: HSCode
telemetry:
  trace_exporter: stdout
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "json", cfg.Logging.Format, "keys absent from the file keep their default")
	assert.Equal(t, "HSCode", cfg.Analysis.CodeColumn)
	assert.Equal(t, "dollar", cfg.Analysis.VolatilityColumn)
	assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
}

func TestLoadFile_EnvOverridesYAML(t *testing.T) {
	path := writeConfigFile(t, `
analysis:
  code_column: HSCode
  volatility_column: rial
`)
	t.Setenv("TRADE_ANALYSIS_CODE_COLUMN", "Tariff")
	t.Setenv("TRADE_LOGGING_LEVEL", "warn")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Tariff", cfg.Analysis.CodeColumn)
	assert.Equal(t, "rial", cfg.Analysis.VolatilityColumn, "unset variables do not override the file")
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{
			name:    "invalid level",
			content: "logging:\n  level: verbose\n",
		},
		{
			name:    "invalid trace exporter",
			content: "telemetry:\n  trace_exporter: jaeger\n",
		},
		{
			name:    "empty code column from env",
			content: "",
			env:     map[string]string{"TRADE_ANALYSIS_CODE_COLUMN": ""},
		},
		{
			name:    "malformed yaml",
			content: "logging: [unterminated\n",
		},
		{
			name:    "sample ratio out of range",
			content: "telemetry:\n  sample_ratio: 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfigFile(t, tt.content)

			_, err := LoadFile(path)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestPaths(t *testing.T) {
	base := t.TempDir()
	paths := NewPaths(base)

	assert.Equal(t, filepath.Join(base, "data", "reports"), paths.ReportsDir)
	assert.Equal(t, filepath.Join(base, "logs", "app.log"), paths.GetLogPath("app.log"))
	assert.Equal(t, filepath.Join(base, "data", "reports", "out.xlsx"), paths.GetReportPath("out.xlsx"))

	assert.Equal(t, filepath.Join(base, "logs", "x.log"), paths.Resolve("logs/x.log"))
	assert.Equal(t, "/abs/file", paths.Resolve("/abs/file"))
	assert.Empty(t, paths.Resolve(""))

	require.NoError(t, paths.EnsureDirectories())
	for _, dir := range []string{paths.DataDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestResolvePaths(t *testing.T) {
	cfg := Default()
	cfg.Telemetry.MetricsTextfile = "logs/metrics.prom"
	cfg.ResolvePaths(NewPaths("/opt/trade"))

	assert.Equal(t, filepath.Join("/opt/trade", "logs", "tradecli.log"), cfg.Logging.FilePath)
	assert.Equal(t, filepath.Join("/opt/trade", "logs", "metrics.prom"), cfg.Telemetry.MetricsTextfile)
	assert.Empty(t, cfg.Telemetry.TraceFile)
}
