package domain

// Sheet names of the analysis workbook, in write order.
const (
	SheetExportData       = "Export Data"
	SheetExportVolatility = "Export Volatility"
	SheetImportData       = "Import Data"
	SheetImportVolatility = "Import Volatility"
)

// TradeFlow distinguishes the two customs datasets.
type TradeFlow string

const (
	TradeFlowExport TradeFlow = "export"
	TradeFlowImport TradeFlow = "import"
)

// DataSheet returns the sheet name holding the aggregated table of the flow.
func (f TradeFlow) DataSheet() string {
	if f == TradeFlowImport {
		return SheetImportData
	}
	return SheetExportData
}

// VolatilitySheet returns the sheet name holding the volatility table of the flow.
func (f TradeFlow) VolatilitySheet() string {
	if f == TradeFlowImport {
		return SheetImportVolatility
	}
	return SheetExportVolatility
}

// Label returns the capitalized flow name used in user-facing messages.
func (f TradeFlow) Label() string {
	if f == TradeFlowImport {
		return "Import"
	}
	return "Export"
}
