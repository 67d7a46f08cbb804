// Package cmd defines the command-line interface for scorecard.
package cmd

import (
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(registryCmd)

	// Add the registry subcommands to the parent registry command
	registryCmd.AddCommand(registryClearCmd)
	registryCmd.AddCommand(registryStatusCmd)
	registryCmd.AddCommand(registryExportCmd)
	registryCmd.AddCommand(registryMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Summary output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Bool("fail-fast", false, "Stop at the first grid point that fails to compile")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("registry-backend", "", "Build registry backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("registry-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in status lines (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of compileCmd to Viper
	compileCmd.Flags().String("output-dir", "", "Directory to write one <model_name>.xml per grid point")
	if err := viper.BindPFlags(compileCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compile flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().String("endpoint", "", "Base URL of the PMML scoring service (e.g., http://localhost:8080/openscoring/model)")
	scoreCmd.Flags().String("model", "", "Model path on the scoring service")
	scoreCmd.Flags().String("query", "", "JSON object of arguments")
	scoreCmd.Flags().String("query-file", "", "JSON object of arguments, or - for stdin")
	scoreCmd.Flags().String("id", "", "Request ID sent with the query")
	scoreCmd.Flags().Bool("raw", false, "Print the raw response body")
	scoreCmd.Flags().String("timeout", contract.DefaultScoringTimeout.String(), "Request timeout")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of registryMigrateCmd to Viper
	registryMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(registryMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding registry migrate flags", err)
	}
}
