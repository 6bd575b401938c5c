package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "tradecli/internal/errors"
	"tradecli/pkg/contracts/domain"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "TRADE"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// AnalysisConfig names the columns the analysis works on
type AnalysisConfig struct {
	CodeColumn       string `yaml:"code_column" envconfig:"CODE_COLUMN" validate:"required"`
	VolatilityColumn string `yaml:"volatility_column" envconfig:"VOLATILITY_COLUMN" validate:"required"`
	VolatilityName   string `yaml:"volatility_name" envconfig:"VOLATILITY_NAME" validate:"required"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName     string  `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment     string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter   string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	TraceFile       string  `yaml:"trace_file" envconfig:"TRACE_FILE"`
	SampleRatio     float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
	MetricsTextfile string  `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// Load loads configuration from defaults, an optional config file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit YAML file; an empty path skips the file.
func LoadFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
	}

	// Only variables that are set override; there are no default tags
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	// Resolve relative paths
	if paths, err := GetPaths(); err == nil {
		cfg.ResolvePaths(paths)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg; keys absent from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// ResolvePaths makes every relative file path absolute under the executable directory
func (c *Config) ResolvePaths(paths *Paths) {
	c.Logging.FilePath = paths.Resolve(c.Logging.FilePath)
	c.Telemetry.TraceFile = paths.Resolve(c.Telemetry.TraceFile)
	c.Telemetry.MetricsTextfile = paths.Resolve(c.Telemetry.MetricsTextfile)
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: "logs/tradecli.log",
		},
		Analysis: AnalysisConfig{
			CodeColumn:       domain.DefaultCodeColumn,
			VolatilityColumn: domain.ColumnDollar,
			VolatilityName:   domain.DefaultVolatilityName,
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "tradecli",
			Environment:   "development",
			TraceExporter: "none",
			SampleRatio:   1.0,
		},
	}
}

// String renders the effective configuration for debug logging
func (c *Config) String() string {
	return fmt.Sprintf("logging=%s/%s/%s analysis=%s:%s->%s telemetry=%s",
		c.Logging.Level, c.Logging.Format, c.Logging.Output,
		c.Analysis.CodeColumn, c.Analysis.VolatilityColumn, c.Analysis.VolatilityName,
		c.Telemetry.TraceExporter)
}
