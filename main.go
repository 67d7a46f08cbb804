// main is the entry point of the scorecard CLI.
package main

import (
	"github.com/huangsam/scorecard/cmd"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/registry"
)

func main() {
	defer registry.CloseRegistry()
	cmd.SetRegistryManager(registry.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		registry.CloseRegistry() // os.Exit skips deferred calls
		contract.LogFatal("Error", err)
	}
}
