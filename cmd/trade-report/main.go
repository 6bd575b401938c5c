package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradecli/internal/app"
	"tradecli/internal/services"
	"tradecli/pkg/contracts"
)

// options holds the parsed command line
type options struct {
	exportPath  string
	importPath  string
	out         string
	format      string
	codeColumn  string
	top         int
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("trade-report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.exportPath, "export", "", "export trade file (.csv or .xlsx)")
	fs.StringVar(&opts.importPath, "import", "", "import trade file (.csv or .xlsx)")
	fs.StringVar(&opts.out, "out", "", "output workbook for xlsx, output directory for csv (defaults to data/reports)")
	fs.StringVar(&opts.format, "format", "xlsx", "output format: xlsx or csv")
	fs.StringVar(&opts.codeColumn, "code", "", "code column name (overrides configuration)")
	fs.IntVar(&opts.top, "top", 10, "number of codes listed in the volatility summary")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.format = strings.ToLower(opts.format)
	if opts.format != "xlsx" && opts.format != "csv" {
		return nil, fmt.Errorf("unsupported format %q (use xlsx or csv)", opts.format)
	}
	if opts.top < 0 {
		return nil, fmt.Errorf("-top must not be negative")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if opts.showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	application, err := app.NewApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	err = generateReport(context.Background(), application, opts, os.Stdout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := application.Shutdown(shutdownCtx); shutdownErr != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", shutdownErr)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func generateReport(ctx context.Context, application *app.Application, opts *options, stdout io.Writer) error {
	logger := application.Logger
	svc := application.Analysis

	if opts.codeColumn != "" {
		analysisOpts := svc.Options()
		analysisOpts.CodeColumn = opts.codeColumn
		svc = services.NewAnalysisService(analysisOpts, application.OTelProviders.Tracer, application.Metrics, logger)
	}

	logger.Info("Generating trade report",
		slog.String("export", opts.exportPath),
		slog.String("import", opts.importPath),
		slog.String("format", opts.format))

	results, err := svc.Run(ctx, opts.exportPath, opts.importPath)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	timestamp := time.Now().Format("20060102")
	var written []string

	switch opts.format {
	case "csv":
		dir := opts.out
		if dir == "" {
			dir = application.Paths.ReportsDir
		}
		written, err = svc.SaveCSV(ctx, results, dir, fmt.Sprintf("trade_analysis_%s", timestamp))
	default:
		path := opts.out
		if path == "" {
			path = application.Paths.GetReportPath(fmt.Sprintf("trade_analysis_%s.xlsx", timestamp))
		}
		if filepath.Ext(path) == "" {
			path += ".xlsx"
		}
		if _, err = svc.Save(ctx, results, path); err == nil {
			written = []string{path}
		}
	}
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	logger.Info("Trade report generated successfully", slog.Any("files", written))

	for _, path := range written {
		fmt.Fprintf(stdout, "Wrote %s\n", path)
	}
	printSummaryStats(stdout, services.Summarize(results, svc.Options().VolatilityName, opts.top))
	return nil
}

func printSummaryStats(w io.Writer, summaries []services.FlowSummary) {
	for _, s := range summaries {
		fmt.Fprintf(w, "\n=== %s: %d ROWS, %d GROUPS, %d CODES ===\n",
			strings.ToUpper(s.Flow.Label()), s.InputRows, s.Groups, s.Codes)

		if len(s.TopMovers) == 0 {
			fmt.Fprintln(w, "No code has a defined volatility in its latest period")
			continue
		}

		fmt.Fprintln(w, "Code         | Period  | Volatility")
		fmt.Fprintln(w, "-------------|---------|-----------")
		for _, m := range s.TopMovers {
			fmt.Fprintf(w, "%-12s | %04d-%02d | %10.4f\n", m.Code, m.Year, m.Month, m.Volatility)
		}
	}
}
