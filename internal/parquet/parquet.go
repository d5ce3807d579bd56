// Package parquet provides data structures and functions for exporting
// repocheck analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/repocheck/schema"
	"github.com/parquet-go/parquet-go"
)

// ScanRun represents a single repocheck scan run with metadata.
// This struct maps to the repocheck_analysis_runs database table.
type ScanRun struct {
	// RunID is the unique identifier for this scan run
	RunID int64 `parquet:"run_id,snappy"`

	// RootPath is the directory tree that was scanned
	RootPath string `parquet:"root_path,snappy"`

	// StartTime is when the scan began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the scan completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the scan in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalChecks is the number of checks executed in this run
	TotalChecks int32 `parquet:"total_checks,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CheckResult represents one check's final report within a scan run.
// This struct maps to the repocheck_check_results database table.
type CheckResult struct {
	// RunID references the parent scan run
	RunID int64 `parquet:"run_id,snappy"`

	// CheckName identifies the check that produced this result
	CheckName string `parquet:"check_name,snappy"`

	// RecordTime is when this result was recorded (stored as TIMESTAMP with nanosecond precision)
	RecordTime time.Time `parquet:"record_time,snappy"`

	// Score is the check's final 0-100 score
	Score float64 `parquet:"score,snappy"`

	// ScoreLabel is the health label derived from the score
	ScoreLabel string `parquet:"score_label,snappy"`

	// FilesDiscovered is the number of eligible files found by discovery
	FilesDiscovered int32 `parquet:"files_discovered,snappy"`

	// FilesAnalyzed is the number of files whose analysis completed
	FilesAnalyzed int32 `parquet:"files_analyzed,snappy"`

	// FilesSkipped is the number of files skipped across all reasons
	FilesSkipped int32 `parquet:"files_skipped,snappy"`

	// Sampled indicates whether the candidate list was reduced by sampling
	Sampled bool `parquet:"sampled,snappy"`

	// EarlyStopped indicates whether discovery was cut short
	EarlyStopped bool `parquet:"early_stopped,snappy"`

	// TimedOut indicates whether the soft deadline expired
	TimedOut bool `parquet:"timed_out,snappy"`

	// HardTimedOut indicates whether the hard deadline abandoned the run
	HardTimedOut bool `parquet:"hard_timed_out,snappy"`

	// WallClockMs is the check's wall-clock duration in milliseconds
	WallClockMs int64 `parquet:"wall_clock_ms,snappy"`

	// MetricsJSON contains the JSON-encoded aggregate metrics (nullable)
	MetricsJSON *string `parquet:"metrics_json,optional,snappy"`
}

// ScanRunFromRecord converts a database row into its Parquet form.
func ScanRunFromRecord(rec schema.ScanRunRecord) ScanRun {
	return ScanRun{
		RunID:         rec.RunID,
		RootPath:      rec.RootPath,
		StartTime:     rec.StartTime,
		EndTime:       rec.EndTime,
		RunDurationMs: rec.RunDurationMs,
		TotalChecks:   rec.TotalChecks,
		ConfigParams:  rec.ConfigParams,
	}
}

// CheckResultFromRecord converts a database row into its Parquet form.
func CheckResultFromRecord(rec schema.CheckResultRecord) CheckResult {
	return CheckResult{
		RunID:           rec.RunID,
		CheckName:       rec.CheckName,
		RecordTime:      rec.RecordTime,
		Score:           rec.Score,
		ScoreLabel:      rec.ScoreLabel,
		FilesDiscovered: rec.FilesDiscovered,
		FilesAnalyzed:   rec.FilesAnalyzed,
		FilesSkipped:    rec.FilesSkipped,
		Sampled:         rec.Sampled,
		EarlyStopped:    rec.EarlyStopped,
		TimedOut:        rec.TimedOut,
		HardTimedOut:    rec.HardTimedOut,
		WallClockMs:     rec.WallClockMs,
		MetricsJSON:     rec.MetricsJSON,
	}
}

// MockFetchScanRuns generates sample ScanRun data for demonstration.
func MockFetchScanRuns() []ScanRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(30 * time.Second)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"soft_timeout":"10s","max_files":500,"workers":8}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(45 * time.Second)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"soft_timeout":"30s","max_files":1000,"workers":4}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []ScanRun{
		{
			RunID:         1,
			RootPath:      "/repos/serviceA",
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			TotalChecks:   3,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			RootPath:      "/repos/serviceB",
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			TotalChecks:   2,
			ConfigParams:  &configParams2,
		},
		{
			RunID:         3,
			RootPath:      "/repos/serviceC",
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			TotalChecks:   0,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchCheckResults generates sample CheckResult data for demonstration.
func MockFetchCheckResults() []CheckResult {
	now := time.Now()
	metrics1 := `{"counters":{"code_lines":12000,"comment_lines":2400}}`
	metrics2 := `{"counters":{"functions":340,"total_complexity":1850}}`

	return []CheckResult{
		{
			RunID:           1,
			CheckName:       "comments",
			RecordTime:      now.Add(-1 * time.Hour),
			Score:           72.5,
			ScoreLabel:      "Good",
			FilesDiscovered: 480,
			FilesAnalyzed:   450,
			FilesSkipped:    30,
			Sampled:         false,
			EarlyStopped:    false,
			TimedOut:        false,
			HardTimedOut:    false,
			WallClockMs:     1250,
			MetricsJSON:     &metrics1,
		},
		{
			RunID:           1,
			CheckName:       "complexity",
			RecordTime:      now.Add(-1 * time.Hour),
			Score:           58.2,
			ScoreLabel:      "Fair",
			FilesDiscovered: 480,
			FilesAnalyzed:   420,
			FilesSkipped:    60,
			Sampled:         true,
			EarlyStopped:    false,
			TimedOut:        true,
			HardTimedOut:    false,
			WallClockMs:     10040,
			MetricsJSON:     &metrics2,
		},
		{
			RunID:           2,
			CheckName:       "license-headers",
			RecordTime:      now.Add(-23 * time.Hour),
			Score:           91.0,
			ScoreLabel:      "Excellent",
			FilesDiscovered: 120,
			FilesAnalyzed:   120,
			FilesSkipped:    0,
			Sampled:         false,
			EarlyStopped:    false,
			TimedOut:        false,
			HardTimedOut:    false,
			WallClockMs:     310,
			MetricsJSON:     nil, // Metrics pruned - nullable field
		},
	}
}

// WriteScanRunsParquet writes a slice of ScanRun structs to a Parquet file.
func WriteScanRunsParquet(data []ScanRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ScanRun struct tags
	writer := parquet.NewGenericWriter[ScanRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCheckResultsParquet writes a slice of CheckResult structs to a Parquet file.
func WriteCheckResultsParquet(data []CheckResult, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the CheckResult struct tags
	writer := parquet.NewGenericWriter[CheckResult](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
