package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "tradecli/internal/errors"
)

// SupportedExtensions lists the input file types LoadTable understands.
var SupportedExtensions = []string{".csv", ".xlsx", ".xlsm"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IsSupported reports whether path has an extension LoadTable can read.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// LoadTable reads a trade file into a table of text cells. The first row is
// the header. CSV files and the first non-empty sheet of Excel workbooks are
// supported.
func LoadTable(filePath string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var (
		t   *Table
		err error
	)
	switch ext {
	case ".csv":
		t, err = loadCSVFile(filePath)
	case ".xlsx", ".xlsm":
		t, err = loadExcelFile(filePath)
	case ".parquet":
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("parquet input is not supported, convert %s to one of %s",
				filepath.Base(filePath), strings.Join(SupportedExtensions, ", ")), nil)
	default:
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("unsupported file type %q, expected one of %s", ext, strings.Join(SupportedExtensions, ", ")), nil)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded trade table",
		slog.String("file", filepath.Base(filePath)),
		slog.Int("columns", len(t.columns)),
		slog.Int("rows", t.Len()))

	return t, nil
}

func loadCSVFile(filePath string) (*Table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open file", err).WithContext("path", filePath)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read %s", filepath.Base(filePath)), err)
	}
	return t, nil
}

// ReadCSV reads comma separated values with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := NewTable(trimAll(header)...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if err := t.AppendRow(textRow(record, len(header))...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func loadExcelFile(filePath string) (*Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open file", err).WithContext("path", filePath)
	}
	defer f.Close()

	// Use the first sheet that has a header row
	for _, name := range f.GetSheetList() {
		// Raw values, so number formats such as #,##0.00 do not reach the parser
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", name), err)
		}
		headerRow := firstNonEmptyRow(rows)
		if headerRow < 0 {
			slog.Debug("Skipping empty sheet", slog.String("sheet_name", name))
			continue
		}

		slog.Debug("Found trade data in sheet",
			slog.String("sheet_name", name),
			slog.Int("header_row", headerRow),
			slog.Int("total_rows", len(rows)))

		header := trimAll(rows[headerRow])
		t := NewTable(header...)
		for _, row := range rows[headerRow+1:] {
			if isBlank(row) {
				continue
			}
			if err := t.AppendRow(textRow(row, len(header))...); err != nil {
				return nil, err
			}
		}
		return t, nil
	}

	return nil, apperrors.NewParsingError(fmt.Sprintf("no sheet with data in %s", filepath.Base(filePath)), nil)
}

// textRow converts raw strings into cells, padding or truncating to width.
func textRow(record []string, width int) []Cell {
	cells := make([]Cell, width)
	for i := 0; i < width && i < len(record); i++ {
		cells[i] = Text(record[i])
	}
	return cells
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func firstNonEmptyRow(rows [][]string) int {
	for i, row := range rows {
		if !isBlank(row) {
			return i
		}
	}
	return -1
}
