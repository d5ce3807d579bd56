package cmd

import (
	"github.com/huangsam/repocheck/core"
	"github.com/huangsam/repocheck/internal/checks"
	"github.com/huangsam/repocheck/internal/contract"
	"github.com/spf13/cobra"
)

// checksCmd lists the registered checks.
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the registered health checks.",
	Long: `Display every registered check with its category, description and
the file extensions it inspects.

Examples:
  # List checks as a table
  repocheck checks

  # List checks as JSON
  repocheck checks --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChecksList(rootCtx, cfg, checks.All()); err != nil {
			contract.LogFatal("Cannot list checks", err)
		}
	},
}
