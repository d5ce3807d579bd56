// Package contract provides interfaces and shared utilities for repocheck's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/repocheck/schema"
)

// FileAnalyzer is the pluggable per-file analysis supplied by a check.
// Implementations must be safe for concurrent use: the scheduler invokes
// Analyze from multiple workers at once. Long loops (regex matching in
// particular) should poll ctx so a soft abort can end them early; the
// scheduler still enforces a per-file deadline around every call.
type FileAnalyzer interface {
	// Analyze inspects one file and returns its partial metrics.
	// The returned error is classified by the scheduler into a skip reason;
	// it never fails the run.
	Analyze(ctx context.Context, root string, file schema.CandidateFile) (schema.PartialResult, error)
}

// ScoreFunc turns aggregated metrics into a score breakdown. It must be a
// pure function: no I/O, no time dependency, no mutation of its input, and a
// defined minimum result when filesAnalyzed is zero.
type ScoreFunc func(metrics *schema.AggregateMetrics, filesAnalyzed int) schema.ScoreBreakdown

// Check bundles an analyzer with its scoring and eligibility rules.
type Check struct {
	Name        schema.CheckName
	Category    string // check family, e.g. "documentation" or "licensing"
	Description string

	// Extensions is the file extension allow-list. Empty means all known
	// code extensions.
	Extensions []string

	Analyzer FileAnalyzer
	Score    ScoreFunc
}

// StoreManager defines the interface for accessing persistence stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetAnalysisStore() AnalysisStore
}

// AnalysisStore defines the interface for tracking scan runs and storing check results.
type AnalysisStore interface {
	// BeginRun creates a new scan run and returns its unique ID
	BeginRun(rootPath string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the scan run with completion data
	EndRun(runID int64, endTime time.Time, totalChecks int) error

	// RecordCheckResult stores one check's final report
	RecordCheckResult(runID int64, report *schema.AnalysisReport) error

	// GetAllRuns returns every recorded scan run
	GetAllRuns() ([]schema.ScanRunRecord, error)

	// GetAllCheckResults returns every recorded check result
	GetAllCheckResults() ([]schema.CheckResultRecord, error)

	// GetRecentResults returns the most recent results for one check,
	// newest first
	GetRecentResults(check schema.CheckName, limit int) ([]schema.CheckResultRecord, error)

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// Close closes the underlying connection
	Close() error
}
