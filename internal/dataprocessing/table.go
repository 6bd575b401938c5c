package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "tradecli/internal/errors"
)

// CellKind tells how a Cell holds its value.
type CellKind int

const (
	CellNull CellKind = iota
	CellNumber
	CellText
)

// missingTokens are textual spellings of an absent value in exported datasets.
var missingTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"none": {},
}

// Cell is a single table value. The zero Cell is null.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

// Null returns an undefined cell.
func Null() Cell {
	return Cell{}
}

// Number returns a numeric cell. Non-finite values become null.
func Number(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null()
	}
	return Cell{Kind: CellNumber, Number: v}
}

// Text returns a text cell holding s verbatim, or null for blank input.
// Surrounding spaces are kept, so "A " and "A" stay distinct codes.
func Text(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Null()
	}
	return Cell{Kind: CellText, Text: s}
}

// IsNull reports whether the cell is undefined.
func (c Cell) IsNull() bool {
	return c.Kind == CellNull
}

// String renders the cell the way it is written to text outputs.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// Float interprets the cell as a number. ok is false for missing values;
// err is set when the cell holds text that is not a number.
func (c Cell) Float() (v float64, ok bool, err error) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true, nil
	case CellText:
		s := strings.TrimSpace(c.Text)
		if _, missing := missingTokens[strings.ToLower(s)]; missing {
			return 0, false, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%q is not a number", c.Text)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false, nil
		}
		return v, true, nil
	default:
		return 0, false, nil
	}
}

// Table is an in-memory table with named columns, held for one analysis run.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// NewTable creates an empty table with the given header.
func NewTable(columns ...string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range t.columns {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	return t
}

// Columns returns a copy of the header.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Require returns a schema error listing every named column the table lacks.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, name := range columns {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewMissingColumnsError(missing)
	}
	return nil
}

// AppendRow adds a row. Its width must match the header.
func (t *Table) AppendRow(cells ...Cell) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.columns))
	}
	t.rows = append(t.rows, append([]Cell(nil), cells...))
	return nil
}

// Row returns the cells of row i. The slice must not be modified.
func (t *Table) Row(i int) []Cell {
	return t.rows[i]
}

// Cell returns the value at row i of the named column.
func (t *Table) Cell(i int, column string) (Cell, bool) {
	j, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return Null(), false
	}
	return t.rows[i][j], true
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]Cell, bool) {
	j, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]Cell, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out, true
}

// WithColumn returns a new table with values set as the named column.
// An existing column of that name is replaced in place; otherwise the
// column is appended. The receiver is left unchanged.
func (t *Table) WithColumn(name string, values []Cell) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.rows))
	}

	columns := t.Columns()
	j, replace := t.index[name]
	if !replace {
		columns = append(columns, name)
		j = len(columns) - 1
	}

	out := NewTable(columns...)
	out.rows = make([][]Cell, len(t.rows))
	for i, row := range t.rows {
		cells := make([]Cell, len(columns))
		copy(cells, row)
		cells[j] = values[i]
		out.rows[i] = cells
	}
	return out, nil
}
