package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/repocheck/schema"
)

// Default values for configuration.
const (
	DefaultSoftTimeoutSec = 30
	DefaultMaxFiles       = 500
	DefaultMaxFileSizeKB  = 1024
	DefaultMaxDirDepth    = 20
	DefaultPerFileTimeout = "5s"
	DefaultCheckParallel  = 2
	DefaultPrecision      = 1
	MaxWorkerCap          = 32 // upper bound on the per-check worker pool
	MaxFilesCap           = 100000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a scan.
// This struct remains the "final, validated" config.
type Config struct {
	RootPath string
	Checks   []schema.CheckName // selected checks; empty means all registered

	SoftTimeout    time.Duration
	HardTimeout    time.Duration // zero means derived from SoftTimeout
	MaxFiles       int
	MaxFileSize    int64 // bytes
	MaxDirDepth    int
	PerFileTimeout time.Duration

	Workers       int // worker pool size per check
	CheckParallel int // number of checks scanned concurrently

	Excludes   []string
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColor   bool

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext
}

// Budget derives the immutable AnalysisBudget for a run starting at the given time.
func (c *Config) Budget(start time.Time) schema.AnalysisBudget {
	return schema.NewAnalysisBudget(
		start,
		c.SoftTimeout,
		c.HardTimeout,
		c.MaxFiles,
		c.MaxFileSize,
		c.MaxDirDepth,
		c.PerFileTimeout,
	)
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Checks != nil {
		clone.Checks = make([]schema.CheckName, len(c.Checks))
		copy(clone.Checks, c.Checks)
	}
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RootPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Check             string `mapstructure:"check"`
	SoftTimeoutSec    int    `mapstructure:"soft-timeout"`
	HardTimeoutSec    int    `mapstructure:"hard-timeout"`
	MaxFiles          int    `mapstructure:"max-files"`
	MaxFileSizeKB     int    `mapstructure:"max-file-size"`
	MaxDepth          int    `mapstructure:"max-depth"`
	PerFileTimeout    string `mapstructure:"per-file-timeout"`
	Workers           int    `mapstructure:"workers"`
	CheckParallel     int    `mapstructure:"check-parallel"`
	Exclude           string `mapstructure:"exclude"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Precision         int    `mapstructure:"precision"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Check-name validation happens in the
// caller against the registry, so this package stays registry-agnostic.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateRootPath(cfg, input); err != nil {
		return err
	}
	if err := validateBudgetInputs(cfg, input); err != nil {
		return err
	}
	if err := validateExecutionInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	return validatePersistenceInputs(cfg, input)
}

// validateRootPath resolves and checks the scan root.
func validateRootPath(cfg *Config, input *ConfigRawInput) error {
	root := input.RootPathStr
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("cannot resolve root path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("root path %q does not exist: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %q is not a directory", abs)
	}
	cfg.RootPath = abs

	for _, name := range strings.Split(input.Check, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			cfg.Checks = append(cfg.Checks, schema.CheckName(name))
		}
	}
	return nil
}

// validateBudgetInputs checks all time and size limits.
func validateBudgetInputs(cfg *Config, input *ConfigRawInput) error {
	if input.SoftTimeoutSec <= 0 {
		return fmt.Errorf("soft-timeout must be positive, got %d", input.SoftTimeoutSec)
	}
	cfg.SoftTimeout = time.Duration(input.SoftTimeoutSec) * time.Second

	if input.HardTimeoutSec < 0 {
		return fmt.Errorf("hard-timeout cannot be negative, got %d", input.HardTimeoutSec)
	}
	if input.HardTimeoutSec > 0 && input.HardTimeoutSec <= input.SoftTimeoutSec {
		return fmt.Errorf("hard-timeout (%ds) must exceed soft-timeout (%ds)", input.HardTimeoutSec, input.SoftTimeoutSec)
	}
	cfg.HardTimeout = time.Duration(input.HardTimeoutSec) * time.Second

	if input.MaxFiles <= 0 || input.MaxFiles > MaxFilesCap {
		return fmt.Errorf("max-files must be between 1 and %d, got %d", MaxFilesCap, input.MaxFiles)
	}
	cfg.MaxFiles = input.MaxFiles

	if input.MaxFileSizeKB <= 0 {
		return fmt.Errorf("max-file-size must be positive, got %d", input.MaxFileSizeKB)
	}
	cfg.MaxFileSize = int64(input.MaxFileSizeKB) * 1024

	if input.MaxDepth <= 0 {
		return fmt.Errorf("max-depth must be positive, got %d", input.MaxDepth)
	}
	cfg.MaxDirDepth = input.MaxDepth

	perFile, err := time.ParseDuration(input.PerFileTimeout)
	if err != nil {
		return fmt.Errorf("invalid per-file-timeout %q: %w", input.PerFileTimeout, err)
	}
	if perFile <= 0 {
		return fmt.Errorf("per-file-timeout must be positive, got %s", perFile)
	}
	cfg.PerFileTimeout = perFile
	return nil
}

// validateExecutionInputs checks worker and exclude settings.
func validateExecutionInputs(cfg *Config, input *ConfigRawInput) error {
	workers := input.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > MaxWorkerCap {
		workers = MaxWorkerCap
	}
	cfg.Workers = workers

	parallel := input.CheckParallel
	if parallel <= 0 {
		parallel = DefaultCheckParallel
	}
	cfg.CheckParallel = parallel

	for _, ex := range strings.Split(input.Exclude, ",") {
		ex = strings.TrimSpace(ex)
		if ex != "" {
			cfg.Excludes = append(cfg.Excludes, ex)
		}
	}
	return nil
}

// validateOutputInputs checks output and rendering settings.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	mode := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[mode]; !ok {
		return fmt.Errorf("invalid output mode %q (valid: text, csv, json, parquet)", input.Output)
	}
	cfg.Output = mode
	cfg.OutputFile = input.OutputFile

	if input.Precision < 0 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 0 and 6, got %d", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative, got %d", input.Width)
	}
	cfg.Width = input.Width

	cfg.UseColor = ParseBoolFlag(input.Color, true)
	return nil
}

// validatePersistenceInputs checks the analysis store settings.
func validatePersistenceInputs(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(input.AnalysisBackend)
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidAnalysisBackends[backend]; !ok {
		return fmt.Errorf("invalid analysis backend %q (valid: sqlite, mysql, postgresql, none)", input.AnalysisBackend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.AnalysisDBConnect); err != nil {
		return err
	}
	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("invalid MySQL connection string; expected format: user:password@tcp(host:port)/dbname")
		}
		return nil
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "postgres://") && !strings.Contains(connStr, "host=") {
			return fmt.Errorf("invalid PostgreSQL connection string; expected postgres:// URL or key=value form")
		}
		return nil
	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}
}

// ProcessProfilingConfig enables profiling when a prefix is configured.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	if prefix == "" {
		return nil
	}
	if strings.ContainsAny(prefix, " \t") {
		return fmt.Errorf("profile prefix cannot contain whitespace: %q", prefix)
	}
	profile.Enabled = true
	profile.Prefix = prefix
	return nil
}

// ParseBoolFlag interprets a yes/no style flag value, falling back to the
// provided default for unrecognized input.
func ParseBoolFlag(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
