package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd prints the compiled rules instead of the documents.
var summaryCmd = &cobra.Command{
	Use:   "summary [description.json]",
	Short: "Show the compiled rules of every model in a table.",
	Long: `Compile a scorecard description and print one row per attribute:
characteristic, predicate, partial score and reason code.

Useful for reviewing a parameter grid before writing documents. Nothing is
recorded in the build registry.

Examples:
  # Review every grid point
  scorecard summary wage.json

  # Export the rules for a spreadsheet
  scorecard summary wage.json --output csv --output-file rules.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, registryManager); err != nil {
			contract.LogFatal("Cannot summarize scorecard", err)
		}
	},
}
