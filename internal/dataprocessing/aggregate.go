package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"

	apperrors "tradecli/internal/errors"
	"tradecli/pkg/contracts/domain"
)

// Aggregate sums weight, rial and dollar per (year, month, code) and appends
// their min-max scaled values.
//
// keyColumn names the code column; an empty name means domain.DefaultCodeColumn.
// Rows are ordered by year, month, then code text regardless of input order.
// Rows with a missing year, month or code are dropped; missing measures are
// left out of their group's sum.
func Aggregate(t *Table, keyColumn string) (*Table, error) {
	if keyColumn == "" {
		keyColumn = domain.DefaultCodeColumn
	}

	records, err := DecodeTradeRecords(t, keyColumn)
	if err != nil {
		return nil, err
	}

	rows := SumByPeriodCode(records)
	ScaleAggregated(rows)

	out := NewTable(AggregatedColumns(keyColumn)...)
	for _, r := range rows {
		if err := out.AppendRow(
			Number(float64(r.Year)),
			Number(float64(r.Month)),
			Text(r.Code),
			Number(r.Weight),
			Number(r.Rial),
			Number(r.Dollar),
			Number(r.WeightScaled),
			Number(r.RialScaled),
			Number(r.DollarScaled),
		); err != nil {
			return nil, err
		}
	}

	slog.Debug("Aggregated trade records",
		slog.String("key_column", keyColumn),
		slog.Int("input_rows", t.Len()),
		slog.Int("records", len(records)),
		slog.Int("groups", out.Len()))

	return out, nil
}

// AggregatedColumns returns the header of an aggregated table.
func AggregatedColumns(keyColumn string) []string {
	columns := []string{domain.ColumnYear, domain.ColumnMonth, keyColumn}
	columns = append(columns, domain.MeasureColumns...)
	return append(columns, domain.ScaledColumns...)
}

// recordValidator checks decoded records against the calendar ranges in
// their struct tags.
var recordValidator = validator.New()

// DecodeTradeRecords converts raw table rows into trade records.
//
// A missing required column, a non-numeric measure, or a fractional year or
// month is a schema error. Rows lacking any part of the grouping key are skipped.
func DecodeTradeRecords(t *Table, keyColumn string) ([]domain.TradeRecord, error) {
	if err := t.Require(domain.ColumnYear, domain.ColumnMonth, keyColumn,
		domain.ColumnWeight, domain.ColumnRial, domain.ColumnDollar); err != nil {
		return nil, err
	}

	yearIdx, _ := t.ColumnIndex(domain.ColumnYear)
	monthIdx, _ := t.ColumnIndex(domain.ColumnMonth)
	keyIdx, _ := t.ColumnIndex(keyColumn)
	weightIdx, _ := t.ColumnIndex(domain.ColumnWeight)
	rialIdx, _ := t.ColumnIndex(domain.ColumnRial)
	dollarIdx, _ := t.ColumnIndex(domain.ColumnDollar)

	records := make([]domain.TradeRecord, 0, t.Len())
	skipped, outOfRange := 0, 0

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)

		year, yearOK, err := integerCell(row[yearIdx])
		if err != nil {
			return nil, cellError(domain.ColumnYear, i, err)
		}
		month, monthOK, err := integerCell(row[monthIdx])
		if err != nil {
			return nil, cellError(domain.ColumnMonth, i, err)
		}
		code := row[keyIdx].String()
		if !yearOK || !monthOK || code == "" {
			skipped++
			continue
		}

		rec := domain.TradeRecord{Year: year, Month: month, Code: code}
		if rec.Weight, err = measureCell(row[weightIdx]); err != nil {
			return nil, cellError(domain.ColumnWeight, i, err)
		}
		if rec.Rial, err = measureCell(row[rialIdx]); err != nil {
			return nil, cellError(domain.ColumnRial, i, err)
		}
		if rec.Dollar, err = measureCell(row[dollarIdx]); err != nil {
			return nil, cellError(domain.ColumnDollar, i, err)
		}
		if recordValidator.Struct(rec) != nil {
			outOfRange++
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		slog.Warn("Skipped rows without a complete period and code",
			slog.String("key_column", keyColumn),
			slog.Int("skipped", skipped))
	}
	// Kept as-is: the period is still a valid grouping key
	if outOfRange > 0 {
		slog.Warn("Records with a period outside the calendar range",
			slog.String("key_column", keyColumn),
			slog.Int("records", outOfRange))
	}

	return records, nil
}

// SumByPeriodCode groups records by PeriodCodeKey and sums their measures.
// The result is sorted by key.
func SumByPeriodCode(records []domain.TradeRecord) []domain.AggregatedRow {
	groups := make(map[domain.PeriodCodeKey]*domain.AggregatedRow)
	for _, rec := range records {
		key := rec.Key()
		g, ok := groups[key]
		if !ok {
			g = &domain.AggregatedRow{PeriodCodeKey: key}
			groups[key] = g
		}
		g.Weight += rec.Weight.Or(0)
		g.Rial += rec.Rial.Or(0)
		g.Dollar += rec.Dollar.Or(0)
	}

	rows := make([]domain.AggregatedRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].PeriodCodeKey.Less(rows[j].PeriodCodeKey)
	})
	return rows
}

// ScaleAggregated fills the scaled measures of rows in place, each column
// normalized over all rows.
func ScaleAggregated(rows []domain.AggregatedRow) {
	weights := make([]float64, len(rows))
	rials := make([]float64, len(rows))
	dollars := make([]float64, len(rows))
	for i, r := range rows {
		weights[i], rials[i], dollars[i] = r.Weight, r.Rial, r.Dollar
	}

	weights = MinMaxScale(weights)
	rials = MinMaxScale(rials)
	dollars = MinMaxScale(dollars)

	for i := range rows {
		rows[i].WeightScaled = weights[i]
		rows[i].RialScaled = rials[i]
		rows[i].DollarScaled = dollars[i]
	}
}

func integerCell(c Cell) (int, bool, error) {
	v, ok, err := c.Float()
	if err != nil || !ok {
		return 0, false, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, false, fmt.Errorf("%v is not an integer", v)
	}
	return int(v), true, nil
}

func measureCell(c Cell) (domain.Measure, error) {
	v, ok, err := c.Float()
	if err != nil {
		return domain.Measure{}, err
	}
	return domain.Measure{Value: v, Valid: ok}, nil
}

// cellError reports a bad value at data row i (1-based, header excluded).
func cellError(column string, i int, err error) error {
	return apperrors.NewSchemaError(fmt.Sprintf("column %q row %d", column, i+1), err).
		WithContext("column", column).
		WithContext("row", i+1)
}
