package core

import (
	"context"
	"os"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/scoring"
)

// ExecuteScore posts one query to a deployed scorecard and prints the result.
func ExecuteScore(ctx context.Context, cfg *contract.Config, _ contract.RegistryManager) error {
	args, err := scoring.LoadArguments(cfg.Query, cfg.QueryFile)
	if err != nil {
		return err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = contract.DefaultScoringTimeout
	}
	client, err := scoring.NewClient(cfg.Endpoint, timeout)
	if err != nil {
		return err
	}
	resp, err := client.Score(ctx, cfg.ModelPath, scoring.Query{ID: cfg.QueryID, Arguments: args})
	if err != nil {
		return err
	}
	return scoring.WriteResult(os.Stdout, resp, cfg.Raw)
}
