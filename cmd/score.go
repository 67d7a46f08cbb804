package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd evaluates a deployed model on a PMML scoring service.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Evaluate a deployed scorecard on a PMML scoring service.",
	Long: `Send one evaluation request to a PMML scoring service and print the
predicted score and reason codes.

The request is POSTed to <endpoint>/<model> as {"id": ..., "arguments": {...}}.
Arguments are a JSON object of field values, given inline with --query or
read from --query-file.

Examples:
  scorecard score --endpoint http://localhost:8080/openscoring/model \
    --model wage --query '{"wage": 1500, "role": "manager"}'

  echo '{"wage": 1500}' | scorecard score --endpoint http://localhost:8080/openscoring/model \
    --model wage --query-file -`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, registryManager); err != nil {
			contract.LogFatal("Cannot score model", err)
		}
	},
}
