package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	apperrors "tradecli/internal/errors"
	"tradecli/internal/files"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	files  *files.Manager
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		files:  files.NewManager(logger),
		logger: logger,
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	return w.files.WriteAtomic(filePath, func(out io.Writer) error {
		// Write BOM if requested (helps Excel recognize UTF-8)
		if options.BOMPrefix {
			if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
				return fmt.Errorf("failed to write BOM: %w", err)
			}
		}

		writer := csv.NewWriter(out)

		if len(options.Headers) > 0 {
			if err := writer.Write(options.Headers); err != nil {
				return fmt.Errorf("failed to write headers: %w", err)
			}
		}

		for i, record := range options.Records {
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}

		writer.Flush()
		return writer.Error()
	})
}

// WriteSheets writes every non-empty sheet to <dir>/<base>_<sheet>.csv and
// returns the paths written, in sheet order.
func (w *CSVWriter) WriteSheets(dir, base string, sheets []Sheet) ([]string, error) {
	if err := checkSheetNames(sheets); err != nil {
		return nil, err
	}

	var written []string
	for _, sheet := range sheets {
		if sheet.Empty() {
			w.logger.Info("Skipping empty sheet", slog.String("sheet_name", sheet.Name))
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", base, sheetSlug(sheet.Name)))
		if err := w.WriteCSV(path, WriteOptions{
			Headers:   sheet.Table.Columns(),
			Records:   sheetRecords(sheet),
			BOMPrefix: true,
		}); err != nil {
			return written, apperrors.NewStorageError(fmt.Sprintf("failed to write sheet %q", sheet.Name), err).
				WithContext("path", path)
		}
		written = append(written, path)
	}
	return written, nil
}

func sheetRecords(sheet Sheet) [][]string {
	records := make([][]string, sheet.Table.Len())
	for i := range records {
		row := sheet.Table.Row(i)
		record := make([]string, len(row))
		for j, c := range row {
			record[j] = formatCell(c)
		}
		records[i] = record
	}
	return records
}
