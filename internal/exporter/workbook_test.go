package exporter

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tradecli/internal/dataprocessing"
	apperrors "tradecli/internal/errors"
)

func sampleTable(t *testing.T) *dataprocessing.Table {
	t.Helper()
	tbl := dataprocessing.NewTable("year", "Code", "dollar", "Volatility")
	require.NoError(t, tbl.AppendRow(
		dataprocessing.Number(2020), dataprocessing.Text("A"), dataprocessing.Number(10), dataprocessing.Null()))
	require.NoError(t, tbl.AppendRow(
		dataprocessing.Number(2020), dataprocessing.Text("A"), dataprocessing.Number(20), dataprocessing.Number(0.6931471805599453)))
	return tbl
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbookWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	tbl := sampleTable(t)

	written, err := NewWorkbookWriter(nil).Write(path, []Sheet{
		{Name: "Export Data", Table: tbl},
		{Name: "Export Volatility", Table: tbl},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Export Data", "Export Volatility"}, written)

	f := openWorkbook(t, path)
	assert.Equal(t, []string{"Export Data", "Export Volatility"}, f.GetSheetList())

	rows, err := f.GetRows("Export Volatility")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"year", "Code", "dollar", "Volatility"}, rows[0])
	assert.Equal(t, []string{"2020", "A", "10"}, rows[1], "undefined cells are left blank")

	require.Len(t, rows[2], 4)
	vol, err := strconv.ParseFloat(rows[2][3], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.6931, vol, 1e-4)

	cellType, err := f.GetCellType("Export Volatility", "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType, "numbers are stored as numbers")
}

func TestWorkbookWriter_SkipsEmptyTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	empty := dataprocessing.NewTable("year", "Code")

	written, err := NewWorkbookWriter(nil).Write(path, []Sheet{
		{Name: "Export Data", Table: sampleTable(t)},
		{Name: "Export Volatility", Table: empty},
		{Name: "Import Data", Table: nil},
		{Name: "Import Volatility", Table: sampleTable(t)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Export Data", "Import Volatility"}, written)

	f := openWorkbook(t, path)
	assert.Equal(t, []string{"Export Data", "Import Volatility"}, f.GetSheetList())
}

func TestWorkbookWriter_AllEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")

	written, err := WriteWorkbook(path, []Sheet{{Name: "Export Data", Table: dataprocessing.NewTable("a")}})
	require.NoError(t, err)
	assert.Empty(t, written)

	f := openWorkbook(t, path)
	assert.NotContains(t, f.GetSheetList(), "Export Data")
}

func TestWorkbookWriter_InvalidSheetNames(t *testing.T) {
	tests := []struct {
		name   string
		sheets []Sheet
	}{
		{"empty name", []Sheet{{Name: "", Table: nil}}},
		{"duplicate name", []Sheet{{Name: "A", Table: nil}, {Name: "A", Table: nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "results.xlsx")
			_, err := WriteWorkbook(path, tt.sheets)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "nothing is written")
		})
	}
}

func TestWorkbookWriter_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.xlsx")

	// sheet names longer than 31 characters are rejected by excelize
	_, err := WriteWorkbook(path, []Sheet{
		{Name: "Export Data", Table: sampleTable(t)},
		{Name: "A sheet name that is far too long for Excel", Table: sampleTable(t)},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
