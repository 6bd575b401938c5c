package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasure_Or(t *testing.T) {
	assert.Equal(t, 4.5, Measure{Value: 4.5, Valid: true}.Or(0))
	assert.Equal(t, 0.0, Measure{Value: 4.5}.Or(0))
	assert.Equal(t, -1.0, Measure{}.Or(-1))
}

func TestPeriodCodeKey_Less(t *testing.T) {
	keys := []PeriodCodeKey{
		{Year: 2021, Month: 1, Code: "A"},
		{Year: 2020, Month: 2, Code: "A"},
		{Year: 2020, Month: 1, Code: "B"},
		{Year: 2020, Month: 1, Code: "010"},
		{Year: 2020, Month: 1, Code: "A"},
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	assert.Equal(t, []PeriodCodeKey{
		{Year: 2020, Month: 1, Code: "010"},
		{Year: 2020, Month: 1, Code: "A"},
		{Year: 2020, Month: 1, Code: "B"},
		{Year: 2020, Month: 2, Code: "A"},
		{Year: 2021, Month: 1, Code: "A"},
	}, keys)
}

func TestTradeRecord_Key(t *testing.T) {
	rec := TradeRecord{Year: 2020, Month: 3, Code: "0101", Dollar: Measure{Value: 1, Valid: true}}
	assert.Equal(t, PeriodCodeKey{Year: 2020, Month: 3, Code: "0101"}, rec.Key())
}

func TestTradeFlow_Sheets(t *testing.T) {
	tests := []struct {
		flow       TradeFlow
		data       string
		volatility string
		label      string
	}{
		{TradeFlowExport, "Export Data", "Export Volatility", "Export"},
		{TradeFlowImport, "Import Data", "Import Volatility", "Import"},
	}

	for _, tt := range tests {
		t.Run(string(tt.flow), func(t *testing.T) {
			assert.Equal(t, tt.data, tt.flow.DataSheet())
			assert.Equal(t, tt.volatility, tt.flow.VolatilitySheet())
			assert.Equal(t, tt.label, tt.flow.Label())
		})
	}
}
