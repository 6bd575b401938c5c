package domain

// Column names shared by the trade files and the result tables.
const (
	ColumnYear   = "year"
	ColumnMonth  = "month"
	ColumnWeight = "weight"
	ColumnRial   = "rial"
	ColumnDollar = "dollar"

	ColumnWeightScaled = "weight_scaled"
	ColumnRialScaled   = "rial_scaled"
	ColumnDollarScaled = "dollar_scaled"

	// DefaultCodeColumn is the commodity classification column of the customs files.
	DefaultCodeColumn = "Code"
	// DefaultVolatilityName is the column appended by the volatility step.
	DefaultVolatilityName = "Volatility"
)

// MeasureColumns lists the summed measures in output order.
var MeasureColumns = []string{ColumnWeight, ColumnRial, ColumnDollar}

// ScaledColumns lists the normalized measures, index-aligned with MeasureColumns.
var ScaledColumns = []string{ColumnWeightScaled, ColumnRialScaled, ColumnDollarScaled}

// Measure is a numeric cell that may be missing in the source file.
type Measure struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Or returns the value, or fallback when the measure is missing.
func (m Measure) Or(fallback float64) float64 {
	if !m.Valid {
		return fallback
	}
	return m.Value
}

// TradeRecord is one row of an export or import customs file.
// Several records may share the same period and code.
type TradeRecord struct {
	Year   int     `json:"year" validate:"required"`
	Month  int     `json:"month" validate:"required,min=1,max=12"`
	Code   string  `json:"code" validate:"required"`
	Weight Measure `json:"weight"`
	Rial   Measure `json:"rial"`
	Dollar Measure `json:"dollar"`
}

// Key returns the aggregation key of the record.
func (r TradeRecord) Key() PeriodCodeKey {
	return PeriodCodeKey{Year: r.Year, Month: r.Month, Code: r.Code}
}

// PeriodCodeKey identifies one aggregated row: a month of trade for one code.
type PeriodCodeKey struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Code  string `json:"code"`
}

// Less orders keys by year, then month, then code text.
func (k PeriodCodeKey) Less(other PeriodCodeKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Code < other.Code
}

// AggregatedRow holds the summed and scaled measures of one PeriodCodeKey.
type AggregatedRow struct {
	PeriodCodeKey
	Weight       float64 `json:"weight"`
	Rial         float64 `json:"rial"`
	Dollar       float64 `json:"dollar"`
	WeightScaled float64 `json:"weight_scaled"`
	RialScaled   float64 `json:"rial_scaled"`
	DollarScaled float64 `json:"dollar_scaled"`
}
