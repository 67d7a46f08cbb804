package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/spf13/cobra"
)

// compileCmd compiles a description into PMML documents.
var compileCmd = &cobra.Command{
	Use:   "compile [description.json]",
	Short: "Compile a scorecard description into PMML 4.2 documents.",
	Long: `Compile a JSON scorecard description into PMML 4.2 Scorecard documents.

Without a parameter grid, one document is written to --output-file or stdout.
With a parameter grid, one document per grid point is written to --output-dir
as <model_name>.xml, where the model name is the base name joined with the
chosen option of every parameter.

A grid point that fails to compile is reported and does not stop the others
unless --fail-fast is set. The command exits non-zero if any grid point failed.

Examples:
  # Compile a single model to stdout
  scorecard compile wage.json

  # Compile every grid point into a directory
  scorecard compile wage.json --output-dir models/

  # Read the description from stdin and track the run
  cat wage.json | scorecard compile - --output-file wage.xml --registry-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompile(rootCtx, cfg, registryManager); err != nil {
			contract.LogFatal("Cannot compile scorecard", err)
		}
	},
}
