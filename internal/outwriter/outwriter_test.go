package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReports() []*schema.AnalysisReport {
	return []*schema.AnalysisReport{
		{
			Check:           schema.CommentsCheck,
			RootPath:        "/tmp/repo",
			FilesDiscovered: 120,
			FilesAnalyzed:   100,
			Skipped:         map[schema.SkipReason]int{schema.SkipTooLarge: 20},
			Sampled:         true,
			WallClockMs:     850,
			Score:           72.5,
			Metrics: schema.AggregateMetrics{
				Counters: map[string]int64{"code_lines": 5000},
				Findings: []schema.Finding{{Path: "a.go", Line: 3, Message: "missing header"}},
			},
		},
		{
			Check:           schema.ComplexityCheck,
			RootPath:        "/tmp/repo",
			FilesDiscovered: 80,
			FilesAnalyzed:   80,
			TimedOut:        true,
			WallClockMs:     1200,
			Score:           40,
			Metrics:         schema.AggregateMetrics{Counters: map[string]int64{}},
		},
	}
}

func testOutConfig() *contract.Config {
	return &contract.Config{
		RootPath:  "/tmp/repo",
		Workers:   4,
		Precision: 1,
		Width:     120,
		Output:    schema.TextOut,
	}
}

func TestWriteScanTable(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)

	err := writeScanTable(sampleReports(), testOutConfig(), fmtFloat, intFmt, 2*time.Second, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "comments")
	assert.Contains(t, out, "complexity")
	assert.Contains(t, out, "72.5")
	assert.Contains(t, out, "sampled")
	assert.Contains(t, out, "soft-timeout")
	assert.Contains(t, out, "missing header")
	assert.Contains(t, out, "Scanned /tmp/repo with 2 checks")
}

func TestWriteCSVResultsForScan(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	fmtFloat, intFmt := createFormatters(1)

	require.NoError(t, writeCSVResultsForScan(w, sampleReports(), fmtFloat, intFmt))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows
	assert.Equal(t, "check", records[0][0])
	assert.Equal(t, "comments", records[1][0])
	assert.Equal(t, "true", records[1][7])  // sampled
	assert.Equal(t, "true", records[2][9])  // timed_out
	assert.Equal(t, "1200", records[2][11]) // wall_clock_ms
}

func TestWriteJSONResultsForScan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForScan(&buf, sampleReports()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "comments", decoded[0]["check"])
	assert.Equal(t, "Good", decoded[0]["label"])
	assert.Equal(t, "Fair", decoded[1]["label"])
}

func TestWriteScanParquetResults(t *testing.T) {
	cfg := testOutConfig()
	cfg.Output = schema.ParquetOut

	// No output file is an error.
	err := writeScanParquetResults(sampleReports(), cfg)
	assert.ErrorIs(t, err, errParquetNeedsFile)

	cfg.OutputFile = filepath.Join(t.TempDir(), "scan.parquet")
	require.NoError(t, writeScanParquetResults(sampleReports(), cfg))
	assert.FileExists(t, cfg.OutputFile)
}

func TestReportFlags(t *testing.T) {
	tests := []struct {
		name   string
		report schema.AnalysisReport
		want   string
	}{
		{"clean", schema.AnalysisReport{}, "-"},
		{"sampled", schema.AnalysisReport{Sampled: true}, "sampled"},
		{"soft timeout", schema.AnalysisReport{TimedOut: true}, "soft-timeout"},
		{"hard timeout wins", schema.AnalysisReport{TimedOut: true, HardTimedOut: true}, "hard-timeout"},
		{"everything", schema.AnalysisReport{Sampled: true, EarlyStopped: true, TimedOut: true}, "sampled,early-stop,soft-timeout"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reportFlags(&tc.report))
		})
	}
}

func TestWriteTextChecks(t *testing.T) {
	var buf bytes.Buffer
	checks := []*contract.Check{
		{Name: schema.CommentsCheck, Category: "documentation", Description: "Comment density"},
		{Name: schema.ComplexityCheck, Category: "code_quality", Description: "Complexity estimate", Extensions: []string{".py", ".go"}},
	}
	require.NoError(t, writeTextChecks(&buf, checks))

	out := buf.String()
	assert.Contains(t, out, "COMMENTS (documentation)")
	assert.Contains(t, out, "all known code extensions")
	assert.Contains(t, out, ".py, .go")
}

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"narrow terminal", 60, 15},
		{"default terminal", 120, 45},
		{"wide terminal", 300, 70},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testOutConfig()
			cfg.Width = tc.width
			assert.Equal(t, tc.want, getMaxTablePathWidth(cfg))
		})
	}
}
