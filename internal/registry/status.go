package registry

import (
	"fmt"
	"maps"
	"slices"

	"github.com/huangsam/scorecard/schema"
)

// PrintRegistryStatus prints registry status information.
func PrintRegistryStatus(status schema.RegistryStatus) {
	fmt.Printf("Registry Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Models Compiled: %d (%d failed)\n", status.TotalModels, status.FailedModels)
	}
	fmt.Println("Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}
