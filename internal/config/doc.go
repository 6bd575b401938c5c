// Package config provides configuration loading for the trade analysis tools.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later sources
// overriding earlier ones:
//
//	1. Default values
//	2. A YAML file (config.yaml or configs/config.yaml, or an explicit path)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern TRADE_<SECTION>_<KEY>:
//
//	TRADE_LOGGING_LEVEL=debug
//	TRADE_LOGGING_OUTPUT=console
//	TRADE_ANALYSIS_CODE_COLUMN=HSCode
//	TRADE_ANALYSIS_VOLATILITY_COLUMN=dollar
//	TRADE_TELEMETRY_TRACE_EXPORTER=stdout
//	TRADE_TELEMETRY_METRICS_TEXTFILE=logs/tradecli.prom
//
// Unset variables leave the file or default value in place.
//
// # Path Management
//
// Relative file paths are resolved against the executable location through
// the Paths type:
//
//	paths, err := config.GetPaths()
//	reportPath := paths.GetReportPath("trade_analysis.xlsx")
//
// # Validation
//
// Load validates the final configuration with go-playground/validator and
// returns a CONFIG error when a value is out of range.
package config
