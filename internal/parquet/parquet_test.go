package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repocheck/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqschema := parquet.SchemaOf(new(ScanRun))
	require.NotNil(t, pqschema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"root_path",
		"start_time",
		"end_time",
		"run_duration_ms",
		"total_checks",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := pqschema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestCheckResultStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqschema := parquet.SchemaOf(new(CheckResult))
	require.NotNil(t, pqschema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"check_name",
		"record_time",
		"score",
		"score_label",
		"files_discovered",
		"files_analyzed",
		"files_skipped",
		"sampled",
		"early_stopped",
		"timed_out",
		"hard_timed_out",
		"wall_clock_ms",
		"metrics_json",
	}

	for _, colName := range expectedColumns {
		col, ok := pqschema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteScanRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "scan_runs.parquet")

	// Get mock data
	data := MockFetchScanRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteScanRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[ScanRun](file)
	defer reader.Close()

	// Read all rows
	readData := make([]ScanRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].RootPath, readData[i].RootPath, "RootPath should match")
		assert.Equal(t, data[i].TotalChecks, readData[i].TotalChecks, "TotalChecks should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].RunDurationMs == nil {
			assert.Nil(t, readData[i].RunDurationMs, "RunDurationMs should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMs, "RunDurationMs should not be nil")
			assert.Equal(t, *data[i].RunDurationMs, *readData[i].RunDurationMs, "RunDurationMs should match")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteCheckResultsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "check_results.parquet")

	// Get mock data
	data := MockFetchCheckResults()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteCheckResultsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[CheckResult](file)
	defer reader.Close()

	// Read all rows
	readData := make([]CheckResult, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].CheckName, readData[i].CheckName, "CheckName should match")
		assert.InDelta(t, data[i].Score, readData[i].Score, 0.01, "Score should match")
		assert.Equal(t, data[i].ScoreLabel, readData[i].ScoreLabel, "ScoreLabel should match")
		assert.Equal(t, data[i].FilesDiscovered, readData[i].FilesDiscovered, "FilesDiscovered should match")
		assert.Equal(t, data[i].FilesAnalyzed, readData[i].FilesAnalyzed, "FilesAnalyzed should match")
		assert.Equal(t, data[i].FilesSkipped, readData[i].FilesSkipped, "FilesSkipped should match")
		assert.Equal(t, data[i].Sampled, readData[i].Sampled, "Sampled should match")
		assert.Equal(t, data[i].TimedOut, readData[i].TimedOut, "TimedOut should match")
		assert.Equal(t, data[i].WallClockMs, readData[i].WallClockMs, "WallClockMs should match")

		// Check nullable MetricsJSON field
		if data[i].MetricsJSON == nil {
			assert.Nil(t, readData[i].MetricsJSON, "MetricsJSON should be nil")
		} else {
			require.NotNil(t, readData[i].MetricsJSON, "MetricsJSON should not be nil")
			assert.Equal(t, *data[i].MetricsJSON, *readData[i].MetricsJSON, "MetricsJSON should match")
		}
	}
}

func TestWriteScanRunsParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_scan_runs.parquet")

	// Write empty data
	err := WriteScanRunsParquet([]ScanRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteCheckResultsParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_check_results.parquet")

	// Write empty data
	err := WriteCheckResultsParquet([]CheckResult{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteScanRunsParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := MockFetchScanRuns()
	err := WriteScanRunsParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestWriteCheckResultsParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := MockFetchCheckResults()
	err := WriteCheckResultsParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestScanRunFromRecord(t *testing.T) {
	now := time.Now()
	endTime := now.Add(time.Minute)
	durationMs := int32(60000)
	config := `{"workers":4}`

	rec := schema.ScanRunRecord{
		RunID:         7,
		RootPath:      "/repos/serviceA",
		StartTime:     now,
		EndTime:       &endTime,
		RunDurationMs: &durationMs,
		TotalChecks:   3,
		ConfigParams:  &config,
	}

	run := ScanRunFromRecord(rec)
	assert.Equal(t, rec.RunID, run.RunID)
	assert.Equal(t, rec.RootPath, run.RootPath)
	assert.Equal(t, rec.StartTime, run.StartTime)
	assert.Equal(t, rec.EndTime, run.EndTime)
	assert.Equal(t, rec.RunDurationMs, run.RunDurationMs)
	assert.Equal(t, rec.TotalChecks, run.TotalChecks)
	assert.Equal(t, rec.ConfigParams, run.ConfigParams)
}

func TestCheckResultFromRecord(t *testing.T) {
	now := time.Now()
	metrics := `{"counters":{"code_lines":100}}`

	rec := schema.CheckResultRecord{
		RunID:           7,
		CheckName:       "comments",
		RecordTime:      now,
		Score:           81.5,
		ScoreLabel:      "Excellent",
		FilesDiscovered: 50,
		FilesAnalyzed:   48,
		FilesSkipped:    2,
		Sampled:         true,
		TimedOut:        true,
		WallClockMs:     900,
		MetricsJSON:     &metrics,
	}

	result := CheckResultFromRecord(rec)
	assert.Equal(t, rec.RunID, result.RunID)
	assert.Equal(t, rec.CheckName, result.CheckName)
	assert.Equal(t, rec.Score, result.Score)
	assert.Equal(t, rec.ScoreLabel, result.ScoreLabel)
	assert.Equal(t, rec.FilesDiscovered, result.FilesDiscovered)
	assert.True(t, result.Sampled)
	assert.True(t, result.TimedOut)
	assert.False(t, result.HardTimedOut)
	assert.Equal(t, rec.MetricsJSON, result.MetricsJSON)
}

func TestNullableFieldHandling(t *testing.T) {
	// Test that we can create structs with various combinations of null fields
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "nullable_test.parquet")

	now := time.Now()
	endTime := now.Add(1 * time.Hour)
	durationMs := int32(3600000)
	config := `{"test":"config"}`

	testData := []ScanRun{
		// All fields populated
		{
			RunID:         1,
			RootPath:      "/repos/full",
			StartTime:     now,
			EndTime:       &endTime,
			RunDurationMs: &durationMs,
			TotalChecks:   3,
			ConfigParams:  &config,
		},
		// All nullable fields are nil
		{
			RunID:         2,
			RootPath:      "/repos/partial",
			StartTime:     now,
			EndTime:       nil,
			RunDurationMs: nil,
			TotalChecks:   0,
			ConfigParams:  nil,
		},
	}

	// Write and read back
	err := WriteScanRunsParquet(testData, outputPath)
	require.NoError(t, err)

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ScanRun](file)
	defer reader.Close()

	readData := make([]ScanRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(testData), n)

	// Verify first record has all fields
	assert.NotNil(t, readData[0].EndTime)
	assert.NotNil(t, readData[0].RunDurationMs)
	assert.NotNil(t, readData[0].ConfigParams)

	// Verify second record has nil nullable fields
	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
}
