package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for analysis tracking.
	DatabaseBackend string

	// SkipReason explains why a discovered file was not analyzed.
	SkipReason string

	// CheckName identifies a registered check.
	CheckName string

	// Category is a language family derived from a file extension.
	Category string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All analysis backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All skip reasons recorded by the engine.
const (
	SkipTooLarge      SkipReason = "too_large"      // file exceeds the per-file size cap
	SkipFileTimeout   SkipReason = "file_timeout"   // per-file deadline exceeded
	SkipReadError     SkipReason = "read_error"     // permission denied, unreadable, vanished
	SkipAnalyzerError SkipReason = "analyzer_error" // analyzer returned an error or panicked
	SkipNotStarted    SkipReason = "not_started"    // soft abort tripped before dispatch
)

// Built-in check names.
const (
	CommentsCheck    CheckName = "comments"
	ComplexityCheck  CheckName = "complexity"
	LicenseCheck     CheckName = "license-headers"
	ReliabilityCheck CheckName = "test-reliability"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidAnalysisBackends lists all valid analysis backends.
var ValidAnalysisBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllSkipReasons lists skip reasons in stable output order.
var AllSkipReasons = []SkipReason{
	SkipTooLarge,
	SkipFileTimeout,
	SkipReadError,
	SkipAnalyzerError,
	SkipNotStarted,
}
