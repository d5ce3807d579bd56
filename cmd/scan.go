package cmd

import (
	"github.com/huangsam/repocheck/core"
	"github.com/huangsam/repocheck/internal/checks"
	"github.com/huangsam/repocheck/internal/contract"
	"github.com/spf13/cobra"
)

// scanCmd runs the selected health checks against a directory tree.
var scanCmd = &cobra.Command{
	Use:   "scan [root-path]",
	Short: "Scan a directory tree and score its health.",
	Long: `Run repository health checks against a directory tree within a fixed time budget.

Each check discovers eligible files, analyzes them in parallel, and produces
a 0-100 score with a component breakdown. When the tree is too large for the
budget, the scan degrades gracefully: files are sampled, slow files are
skipped, and the report carries flags describing what was cut short.

Built-in checks:
  comments         - comment and doc-comment coverage
  complexity       - cyclomatic complexity of functions
  license-headers  - copyright and SPDX header coverage
  test-reliability - flakiness markers and retry hygiene in tests

Examples:
  # Run all checks against the current directory
  repocheck scan

  # Run a single check with a tight budget
  repocheck scan --check complexity --soft-timeout 5 /path/to/repo

  # Export results as JSON
  repocheck scan --output json --output-file results.json

  # Track scores over time with the analysis store
  repocheck scan --analysis-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		selected, err := checks.Select(cfg.Checks)
		if err != nil {
			contract.LogFatal("Cannot resolve checks", err)
		}
		if err := core.ExecuteScan(rootCtx, cfg, selected, storeManager); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}
