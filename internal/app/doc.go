// Package app assembles the application: configuration, the global slog
// logger, OpenTelemetry providers, analysis metrics and the analysis service.
//
// Both binaries start the same way:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
//	    os.Exit(1)
//	}
//	defer application.Shutdown(context.Background())
//
// Shutdown writes the Prometheus textfile named by
// telemetry.metrics_textfile before the meter provider is stopped.
package app
