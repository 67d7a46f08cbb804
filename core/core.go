// Package core has the scorecard compiler: predicate compilation, parameter
// substitution, model building, PMML rendering and grid expansion.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/loader"
	"github.com/huangsam/scorecard/internal/outwriter"
	"github.com/huangsam/scorecard/schema"
)

// ExecutorFunc defines the function signature for executing the compiler commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.RegistryManager) error

// ExecuteCompile compiles the description at cfg.InputPath and writes one
// PMML document per grid point. It serves as the main entry point for 'compile'.
func ExecuteCompile(ctx context.Context, cfg *contract.Config, mgr contract.RegistryManager) error {
	start := time.Now()
	desc, err := loader.Load(cfg.InputPath)
	if err != nil {
		return err
	}

	// Refuse a multi-model grid without a directory before compiling anything
	if cfg.OutputDir == "" {
		points, err := ExpandGrid(desc.ParamGrid)
		if err != nil {
			return err
		}
		if len(points) != 1 {
			return fmt.Errorf("description expands to %d models; use --output-dir to write them", len(points))
		}
	}

	results, err := GetCompileResults(ctx, cfg, desc, mgr, loader.InputName(cfg.InputPath))
	if err != nil {
		return err
	}
	if err := outwriter.WriteDocuments(results, cfg); err != nil {
		return err
	}
	if !shouldSuppressHeader(ctx) {
		outwriter.LogCompileResult(results, cfg, time.Since(start))
	}
	return failureError(results)
}

// ExecuteSummary compiles the description and prints the tabular summary of
// every model instead of the documents.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.RegistryManager) error {
	start := time.Now()
	desc, err := loader.Load(cfg.InputPath)
	if err != nil {
		return err
	}
	summaries, err := GetSummaryResults(ctx, cfg, desc, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteSummary(summaries, cfg, time.Since(start))
}

// ExecuteGrid lists the grid points of the description without compiling them.
func ExecuteGrid(_ context.Context, cfg *contract.Config, _ contract.RegistryManager) error {
	desc, err := loader.Load(cfg.InputPath)
	if err != nil {
		return err
	}
	base, points, err := GetGridPoints(desc)
	if err != nil {
		return err
	}
	return outwriter.WriteGrid(base, points, cfg)
}

// GetCompileResults expands and compiles desc, recording the run in the
// registry when one is configured. Results are in grid order.
func GetCompileResults(ctx context.Context, cfg *contract.Config, desc *schema.Description, mgr contract.RegistryManager, inputName string) ([]schema.ModelResult, error) {
	if err := ValidateDescription(desc); err != nil {
		return nil, err
	}
	points, err := ExpandGrid(desc.ParamGrid)
	if err != nil {
		return nil, err
	}
	if !shouldSuppressHeader(ctx) {
		outwriter.LogCompileHeader(cfg, inputName, len(points))
	}

	ctx = beginRun(ctx, cfg, mgr, inputName)
	results, err := NewExpander(cfg.Workers, cfg.FailFast).Expand(ctx, desc)
	recordResults(ctx, mgr, results)
	if err != nil {
		return results, err
	}

	if !shouldSuppressHeader(ctx) && len(results) > 1 {
		for _, r := range results {
			if r.Failed() {
				contract.LogWarn("Compile failed", r.Err)
			}
		}
	}
	return results, nil
}

// GetSummaryResults compiles desc and returns one summary per grid point.
// The registry is not updated; summaries are a read-only view.
func GetSummaryResults(ctx context.Context, cfg *contract.Config, desc *schema.Description, _ contract.RegistryManager) ([]schema.ModelSummary, error) {
	results, err := NewExpander(cfg.Workers, cfg.FailFast).Expand(ctx, desc)
	if err != nil {
		return nil, err
	}
	return schema.SummarizeResults(results), nil
}

// GetGridPoints validates desc and returns its base model name and grid points.
func GetGridPoints(desc *schema.Description) (string, []schema.GridPoint, error) {
	if err := ValidateDescription(desc); err != nil {
		return "", nil, err
	}
	points, err := ExpandGrid(desc.ParamGrid)
	if err != nil {
		return "", nil, err
	}
	return *desc.ModelName, points, nil
}

// failureError summarizes failed grid points as one error.
func failureError(results []schema.ModelResult) error {
	failed := outwriter.CountFailed(results)
	if failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return results[0].Err
	}
	return fmt.Errorf("%d of %d models failed to compile", failed, len(results))
}
