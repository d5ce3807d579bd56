package outwriter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/internal/parquet"
	"github.com/huangsam/repocheck/schema"
)

// errParquetNeedsFile is returned when parquet output is requested without a
// destination; the columnar format has no sensible stdout rendering.
var errParquetNeedsFile = errors.New("parquet output requires --output-file")

// writeScanParquetResults converts the reports to their columnar form and
// writes them to the configured output file.
func writeScanParquetResults(reports []*schema.AnalysisReport, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errParquetNeedsFile
	}

	now := time.Now()
	rows := make([]parquet.CheckResult, 0, len(reports))
	for _, r := range reports {
		var metricsJSON *string
		if encoded, err := json.Marshal(r.Metrics); err == nil {
			s := string(encoded)
			metricsJSON = &s
		}
		rows = append(rows, parquet.CheckResult{
			CheckName:       string(r.Check),
			RecordTime:      now,
			Score:           r.Score,
			ScoreLabel:      contract.GetPlainLabel(r.Score),
			FilesDiscovered: int32(r.FilesDiscovered),
			FilesAnalyzed:   int32(r.FilesAnalyzed),
			FilesSkipped:    int32(r.SkippedTotal()),
			Sampled:         r.Sampled,
			EarlyStopped:    r.EarlyStopped,
			TimedOut:        r.TimedOut,
			HardTimedOut:    r.HardTimedOut,
			WallClockMs:     r.WallClockMs,
			MetricsJSON:     metricsJSON,
		})
	}

	if err := parquet.WriteCheckResultsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}
