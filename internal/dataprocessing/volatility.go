package dataprocessing

import (
	"math"

	"tradecli/pkg/contracts/domain"
)

// Volatility appends the period-over-period log difference of column as a
// new column called name, computed separately for each value of keyColumn.
//
// Rows keep their order; each code's rows are taken in table order, so the
// table must already be sorted by period (Aggregate output is). Zero and
// negative values have no logarithm and count as missing. The first row of
// each code, and any row whose current or previous value is missing, is null.
func Volatility(t *Table, column, name, keyColumn string) (*Table, error) {
	if keyColumn == "" {
		keyColumn = domain.DefaultCodeColumn
	}
	if name == "" {
		name = domain.DefaultVolatilityName
	}
	if err := t.Require(column, keyColumn); err != nil {
		return nil, err
	}

	valueIdx, _ := t.ColumnIndex(column)
	keyIdx, _ := t.ColumnIndex(keyColumn)

	// previous log value per code; a null Cell marks a missing value
	previous := make(map[string]Cell)
	out := make([]Cell, t.Len())

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)

		current, err := logCell(row[valueIdx])
		if err != nil {
			return nil, cellError(column, i, err)
		}

		key := row[keyIdx]
		if key.IsNull() {
			continue
		}
		code := key.String()

		prev, seen := previous[code]
		previous[code] = current
		if !seen || prev.IsNull() || current.IsNull() {
			continue
		}
		out[i] = Number(current.Number - prev.Number)
	}

	return t.WithColumn(name, out)
}

// logCell returns ln(value) as a number, or null when the value is missing
// or not positive.
func logCell(c Cell) (Cell, error) {
	v, ok, err := c.Float()
	if err != nil {
		return Null(), err
	}
	if !ok || v <= 0 {
		return Null(), nil
	}
	return Number(math.Log(v)), nil
}
