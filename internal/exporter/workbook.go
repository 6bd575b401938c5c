package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "tradecli/internal/errors"
	"tradecli/internal/files"
)

// defaultSheet is the sheet excelize creates with every new workbook.
const defaultSheet = "Sheet1"

// WorkbookWriter writes result tables into an Excel workbook.
type WorkbookWriter struct {
	files  *files.Manager
	logger *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer instance
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{
		files:  files.NewManager(logger),
		logger: logger,
	}
}

// Write saves sheets to the workbook at path, in order, one worksheet per
// non-empty table with the header in the first row. It returns the names of
// the sheets written. When every table is empty the workbook keeps a single
// blank default sheet.
func (w *WorkbookWriter) Write(path string, sheets []Sheet) ([]string, error) {
	if err := checkSheetNames(sheets); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	var written []string
	for _, sheet := range sheets {
		if sheet.Empty() {
			w.logger.Info("Skipping empty sheet", slog.String("sheet_name", sheet.Name))
			continue
		}

		if len(written) == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return nil, apperrors.NewStorageError(fmt.Sprintf("failed to name sheet %q", sheet.Name), err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to add sheet %q", sheet.Name), err)
		}

		if err := writeSheet(f, sheet); err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to write sheet %q", sheet.Name), err)
		}
		written = append(written, sheet.Name)

		w.logger.Debug("Wrote sheet",
			slog.String("sheet_name", sheet.Name),
			slog.Int("rows", sheet.Table.Len()))
	}

	if len(written) > 0 {
		if idx, err := f.GetSheetIndex(written[0]); err == nil {
			f.SetActiveSheet(idx)
		}
	}

	err := w.files.WriteAtomic(path, func(out io.Writer) error {
		_, err := f.WriteTo(out)
		return err
	})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}

	w.logger.Info("Workbook saved",
		slog.String("path", path),
		slog.Any("sheets", written))

	return written, nil
}

// WriteWorkbook saves sheets to path with a default writer.
func WriteWorkbook(path string, sheets []Sheet) ([]string, error) {
	return NewWorkbookWriter(nil).Write(path, sheets)
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	sw, err := f.NewStreamWriter(sheet.Name)
	if err != nil {
		return err
	}

	columns := sheet.Table.Columns()
	header := make([]interface{}, len(columns))
	for i, name := range columns {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	values := make([]interface{}, len(columns))
	for i := 0; i < sheet.Table.Len(); i++ {
		for j, c := range sheet.Table.Row(i) {
			values[j] = workbookValue(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}

	return sw.Flush()
}

func checkSheetNames(sheets []Sheet) error {
	seen := make(map[string]bool, len(sheets))
	for _, s := range sheets {
		if s.Name == "" {
			return apperrors.NewAppValidationError("sheet name must not be empty")
		}
		if seen[s.Name] {
			return apperrors.NewAppValidationError(fmt.Sprintf("duplicate sheet name %q", s.Name))
		}
		seen[s.Name] = true
	}
	return nil
}
