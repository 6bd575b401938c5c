// Package services implements the analysis workflow behind both front ends.
//
// AnalysisService sequences the dataprocessing steps for the export and the
// import file and hands the result tables to the exporter:
//
//	svc := services.NewAnalysisService(services.DefaultAnalysisOptions(), tracer, metrics, logger)
//	results, err := svc.Run(ctx, exportPath, importPath)
//	if err != nil {
//	    return err
//	}
//	_, err = svc.Save(ctx, results, "trade_analysis.xlsx")
//
// Run refuses to start unless both paths are given and returns a
// MISSING_INPUT error without reading anything. Each flow runs validate,
// load, aggregate and volatility in that order under its own span.
//
// Summarize reduces Results to the counts and top movers printed by the
// batch report.
package services
