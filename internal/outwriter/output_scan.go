package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// maxFindingsShown bounds the findings section of the text output.
const maxFindingsShown = 10

// WriteScanResults outputs the scan reports, dispatching based on the output format configured.
func WriteScanResults(reports []*schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeScanJSONResults(reports, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeScanCSVResults(reports, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeScanParquetResults(reports, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanTable(reports, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeScanJSONResults handles opening the file and calling the JSON writer.
func writeScanJSONResults(reports []*schema.AnalysisReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForScan(w, reports)
	}, "Wrote JSON")
}

// writeScanCSVResults handles opening the file and calling the CSV writer.
func writeScanCSVResults(reports []*schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForScan(csvWriter, reports, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeScanTable generates and writes the human-readable table.
func writeScanTable(reports []*schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Check", "Score", "Label", "Analyzed", "Discovered", "Skipped", "Flags", "Ms"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, r := range reports {
		row := []string{
			string(r.Check),
			fmtFloat(r.Score),
			contract.GetColorLabel(r.Score),
			fmt.Sprintf(intFmt, r.FilesAnalyzed),
			fmt.Sprintf(intFmt, r.FilesDiscovered),
			fmt.Sprintf(intFmt, r.SkippedTotal()),
			reportFlags(r),
			strconv.FormatInt(r.WallClockMs, 10),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if err := writeFindingsSection(writer, reports, cfg); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Scanned %s with %d checks\n", reports[0].RootPath, len(reports)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers per check\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeFindingsSection prints a bounded preview of each report's findings.
func writeFindingsSection(writer io.Writer, reports []*schema.AnalysisReport, cfg *contract.Config) error {
	pathWidth := getMaxTablePathWidth(cfg)
	for _, r := range reports {
		if len(r.Metrics.Findings) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(writer, "\n%s findings:\n", r.Check); err != nil {
			return err
		}
		shown := r.Metrics.Findings
		if len(shown) > maxFindingsShown {
			shown = shown[:maxFindingsShown]
		}
		for _, f := range shown {
			if _, err := fmt.Fprintf(writer, "  %s:%d %s\n", contract.TruncatePath(f.Path, pathWidth), f.Line, f.Message); err != nil {
				return err
			}
		}
		if rest := len(r.Metrics.Findings) - len(shown); rest > 0 {
			if _, err := fmt.Fprintf(writer, "  ... and %d more\n", rest); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeCSVResultsForScan writes the scan reports in CSV format.
func writeCSVResultsForScan(w *csv.Writer, reports []*schema.AnalysisReport, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"check",
		"root_path",
		"score",
		"label",
		"files_analyzed",
		"files_discovered",
		"files_skipped",
		"sampled",
		"early_stopped",
		"timed_out",
		"hard_timed_out",
		"wall_clock_ms",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range reports {
		rec := []string{
			string(r.Check),
			r.RootPath,
			fmtFloat(r.Score),
			contract.GetPlainLabel(r.Score),
			fmt.Sprintf(intFmt, r.FilesAnalyzed),
			fmt.Sprintf(intFmt, r.FilesDiscovered),
			fmt.Sprintf(intFmt, r.SkippedTotal()),
			strconv.FormatBool(r.Sampled),
			strconv.FormatBool(r.EarlyStopped),
			strconv.FormatBool(r.TimedOut),
			strconv.FormatBool(r.HardTimedOut),
			strconv.FormatInt(r.WallClockMs, 10),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForScan writes the scan reports in JSON format.
func writeJSONResultsForScan(w io.Writer, reports []*schema.AnalysisReport) error {
	// 1. Prepare the data structure for JSON with label added
	type JSONScanResult struct {
		Label string `json:"label"`
		*schema.AnalysisReport
	}

	output := make([]JSONScanResult, len(reports))
	for i, r := range reports {
		output[i] = JSONScanResult{
			Label:          contract.GetPlainLabel(r.Score),
			AnalysisReport: r,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
