package exporter

import (
	"strings"

	"tradecli/internal/dataprocessing"
)

// Sheet is a named result table.
type Sheet struct {
	Name  string
	Table *dataprocessing.Table
}

// Empty reports whether the sheet has no rows to write.
func (s Sheet) Empty() bool {
	return s.Table.Empty()
}

// workbookValue converts a cell into the value excelize stores: numbers as
// numeric cells, text as strings, and nil for undefined so the cell stays blank.
func workbookValue(c dataprocessing.Cell) interface{} {
	switch c.Kind {
	case dataprocessing.CellNumber:
		return c.Number
	case dataprocessing.CellText:
		return c.Text
	default:
		return nil
	}
}

// formatCell renders a cell for CSV output; undefined cells are empty.
func formatCell(c dataprocessing.Cell) string {
	return c.String()
}

// sheetSlug turns a sheet name into a file name fragment: "Export Data" -> "export_data".
func sheetSlug(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "_")
}
