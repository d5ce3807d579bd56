package schema

import "time"

// AnalysisStatus represents the status of the analysis store.
type AnalysisStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalResults  int              `json:"total_results"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// ScanRunRecord represents a row from the repocheck_analysis_runs table.
type ScanRunRecord struct {
	RunID         int64
	RootPath      string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalChecks   int32
	ConfigParams  *string
}

// CheckResultRecord represents a row from the repocheck_check_results table.
type CheckResultRecord struct {
	RunID           int64
	CheckName       string
	RecordTime      time.Time
	Score           float64
	ScoreLabel      string
	FilesDiscovered int32
	FilesAnalyzed   int32
	FilesSkipped    int32
	Sampled         bool
	EarlyStopped    bool
	TimedOut        bool
	HardTimedOut    bool
	WallClockMs     int64
	MetricsJSON     *string
}
