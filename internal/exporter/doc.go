// Package exporter writes analysis result tables to disk.
//
// This package contains two writers:
//
// WorkbookWriter: writes named tables into one Excel workbook, one sheet per
// table, skipping empty tables. This is the output of every analysis run.
//
// CSVWriter: writes each named table to its own CSV file with a UTF-8 BOM for
// Excel compatibility, for runs that ask for plain text output.
//
// Both writers stage output in a temporary file and rename it into place, so
// a failed export leaves no partial file.
//
// Example usage:
//
//	sheets := []exporter.Sheet{
//	    {Name: "Export Data", Table: exportAgg},
//	    {Name: "Export Volatility", Table: exportVol},
//	}
//	written, err := exporter.NewWorkbookWriter(logger).Write("results.xlsx", sheets)
package exporter
