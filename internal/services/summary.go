package services

import (
	"math"
	"sort"

	"tradecli/internal/dataprocessing"
	"tradecli/pkg/contracts/domain"
)

// CodeVolatility is the latest defined volatility of one code
type CodeVolatility struct {
	Code       string  `json:"code"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Volatility float64 `json:"volatility"`
}

// FlowSummary describes the result tables of one trade flow
type FlowSummary struct {
	Flow      domain.TradeFlow `json:"flow"`
	InputRows int              `json:"input_rows"`
	Groups    int              `json:"groups"`
	Codes     int              `json:"codes"`
	TopMovers []CodeVolatility `json:"top_movers"`
}

// Summarize reports group and code counts for both flows and the topN codes
// whose volatility in their latest period is largest in absolute value. A
// code whose latest volatility is undefined is not ranked.
func Summarize(results *Results, volatilityName string, topN int) []FlowSummary {
	if volatilityName == "" {
		volatilityName = domain.DefaultVolatilityName
	}
	summaries := make([]FlowSummary, 0, 2)
	for _, f := range []FlowResult{results.Export, results.Import} {
		summaries = append(summaries, summarizeFlow(f, results.CodeColumn, volatilityName, topN))
	}
	return summaries
}

func summarizeFlow(f FlowResult, codeColumn, volatilityName string, topN int) FlowSummary {
	summary := FlowSummary{
		Flow:      f.Flow,
		InputRows: f.InputRows,
		Groups:    f.Aggregated.Len(),
	}

	latest := latestVolatility(f.Volatility, codeColumn, volatilityName)
	summary.Codes = len(latest)

	for _, cv := range latest {
		if !math.IsNaN(cv.Volatility) {
			summary.TopMovers = append(summary.TopMovers, cv)
		}
	}
	sort.Slice(summary.TopMovers, func(i, j int) bool {
		a, b := math.Abs(summary.TopMovers[i].Volatility), math.Abs(summary.TopMovers[j].Volatility)
		if a != b {
			return a > b
		}
		return summary.TopMovers[i].Code < summary.TopMovers[j].Code
	})
	if topN >= 0 && len(summary.TopMovers) > topN {
		summary.TopMovers = summary.TopMovers[:topN]
	}
	return summary
}

// latestVolatility maps each code to its last row; undefined volatility is NaN.
func latestVolatility(t *dataprocessing.Table, codeColumn, volatilityName string) map[string]CodeVolatility {
	latest := make(map[string]CodeVolatility)
	if t == nil || !t.HasColumn(codeColumn) || !t.HasColumn(volatilityName) {
		return latest
	}

	for i := 0; i < t.Len(); i++ {
		code, _ := t.Cell(i, codeColumn)
		if code.IsNull() {
			continue
		}
		cv := CodeVolatility{Code: code.String(), Volatility: math.NaN()}
		if c, ok := t.Cell(i, domain.ColumnYear); ok {
			if v, ok, _ := c.Float(); ok {
				cv.Year = int(v)
			}
		}
		if c, ok := t.Cell(i, domain.ColumnMonth); ok {
			if v, ok, _ := c.Float(); ok {
				cv.Month = int(v)
			}
		}
		if c, ok := t.Cell(i, volatilityName); ok {
			if v, ok, _ := c.Float(); ok {
				cv.Volatility = v
			}
		}
		latest[cv.Code] = cv
	}
	return latest
}
