package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/repocheck/internal/parquet"
)

// ExecuteAnalysisExport performs the actual export of analysis data to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the analysis store
	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis tracking is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scan runs: %d\n", status.TotalRuns)
	fmt.Printf("Total check results: %d\n", status.TotalResults)

	// Retrieve all scan runs
	scanRuns, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scan runs: %w", err)
	}

	// Retrieve all check results
	checkResults, err := store.GetAllCheckResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve check results: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := make([]parquet.ScanRun, 0, len(scanRuns))
	for _, rec := range scanRuns {
		parquetRuns = append(parquetRuns, parquet.ScanRunFromRecord(rec))
	}
	parquetResults := make([]parquet.CheckResult, 0, len(checkResults))
	for _, rec := range checkResults {
		parquetResults = append(parquetResults, parquet.CheckResultFromRecord(rec))
	}

	// Write scan runs to Parquet
	scanRunsFile := outputFile + ".scan_runs.parquet"
	if err := parquet.WriteScanRunsParquet(parquetRuns, scanRunsFile); err != nil {
		return fmt.Errorf("failed to write scan runs: %w", err)
	}
	fmt.Printf("Exported %d scan runs to: %s\n", len(parquetRuns), scanRunsFile)

	// Write check results to Parquet
	checkResultsFile := outputFile + ".check_results.parquet"
	if err := parquet.WriteCheckResultsParquet(parquetResults, checkResultsFile); err != nil {
		return fmt.Errorf("failed to write check results: %w", err)
	}
	fmt.Printf("Exported %d check results to: %s\n", len(parquetResults), checkResultsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
