// Package cmd defines the command-line interface for repocheck.
package cmd

import (
	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analysisCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("check", "c", "", "Comma-separated list of checks to run (default: all)")
	rootCmd.PersistentFlags().Int("soft-timeout", contract.DefaultSoftTimeoutSec, "Soft time budget per check in seconds")
	rootCmd.PersistentFlags().Int("hard-timeout", 0, "Hard deadline per check in seconds (0 = derived from soft-timeout)")
	rootCmd.PersistentFlags().Int("max-files", contract.DefaultMaxFiles, "Cap on the number of files analyzed per check")
	rootCmd.PersistentFlags().Int("max-file-size", contract.DefaultMaxFileSizeKB, "Per-file size cap in KB; larger files are skipped")
	rootCmd.PersistentFlags().Int("max-depth", contract.DefaultMaxDirDepth, "Maximum directory depth for discovery")
	rootCmd.PersistentFlags().String("per-file-timeout", contract.DefaultPerFileTimeout, "Ceiling on time spent analyzing a single file (e.g. 5s)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers per check")
	rootCmd.PersistentFlags().Int("check-parallel", contract.DefaultCheckParallel, "Number of checks scanned concurrently")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
