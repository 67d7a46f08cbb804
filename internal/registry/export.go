package registry

import (
	"errors"
	"fmt"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/parquet"
)

// ExecuteRegistryExport exports the registry to two Parquet files named
// after outputFile: <outputFile>.compile_runs.parquet and <outputFile>.models.parquet.
func ExecuteRegistryExport(mgr contract.RegistryManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetRegistryStore()
	if store == nil {
		return errors.New("build registry is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get registry status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no registry data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total compile runs: %d\n", status.TotalRuns)
	fmt.Printf("Total model records: %d\n", status.TableSizes[modelsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve compile runs: %w", err)
	}
	models, err := store.GetAllModels()
	if err != nil {
		return fmt.Errorf("failed to retrieve models: %w", err)
	}

	parquetRuns := parquet.ConvertCompileRunRecords(runs)
	runsFile := outputFile + ".compile_runs.parquet"
	if err := parquet.WriteCompileRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write compile runs: %w", err)
	}
	fmt.Printf("Exported %d compile runs to: %s\n", len(parquetRuns), runsFile)

	parquetModels := parquet.ConvertModelRecords(models)
	modelsFile := outputFile + ".models.parquet"
	if err := parquet.WriteCompiledModelsParquet(parquetModels, modelsFile); err != nil {
		return fmt.Errorf("failed to write models: %w", err)
	}
	fmt.Printf("Exported %d model records to: %s\n", len(parquetModels), modelsFile)

	return nil
}
