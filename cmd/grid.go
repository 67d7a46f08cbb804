package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/spf13/cobra"
)

// gridCmd lists the grid points without compiling.
var gridCmd = &cobra.Command{
	Use:   "grid [description.json]",
	Short: "List the models a parameter grid expands to.",
	Long: `List every grid point of the description with its model name and the
value chosen for each parameter. Predicates are not compiled.

Examples:
  scorecard grid wage.json
  scorecard grid wage.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGrid(rootCtx, cfg, registryManager); err != nil {
			contract.LogFatal("Cannot list parameter grid", err)
		}
	},
}
