// Package dataprocessing turns raw customs trade files into the analysis tables.
//
// The package is organized into four parts:
//
//  1. Table: a small in-memory table of typed cells (number, text, null)
//  2. Parser: LoadTable reads CSV and Excel trade files into a Table
//  3. Aggregate: sums weight, rial and dollar per (year, month, code) and
//     min-max scales the sums to [0,1]
//  4. Volatility: per-code log difference of one measure between
//     consecutive periods
//
// # Usage
//
//	raw, err := dataprocessing.LoadTable("exports_1402.csv")
//	if err != nil {
//	    return err
//	}
//
//	agg, err := dataprocessing.Aggregate(raw, "Code")
//	if err != nil {
//	    return err
//	}
//
//	vol, err := dataprocessing.Volatility(agg, "dollar", "Volatility", "Code")
//
// Aggregate must run before Volatility: volatility needs exactly one row per
// period and code, in period order.
package dataprocessing
