package cmd

import (
	"fmt"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/registry"
	"github.com/huangsam/scorecard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// registryBackend reads the registry backend settings from Viper and validates them.
func registryBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backendStr := viper.GetString("registry-backend")
	connStr := viper.GetString("registry-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid registry backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// registrySetup loads minimal configuration needed for registry operations.
// This is used by commands that need registry access without full shared setup.
func registrySetup() error {
	backend, connStr, err := registryBackend()
	if err != nil {
		return err
	}

	if err := registry.InitRegistry(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize registry: %w", err)
	}

	cfg.RegistryBackend = backend
	cfg.RegistryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// registrySetupWrapper wraps registrySetup to provide PreRunE for registry commands.
func registrySetupWrapper(_ *cobra.Command, _ []string) error {
	return registrySetup()
}

// registryMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT initialize the store or create tables, so migrations can run
// on a fresh database.
func registryMigrateSetup() error {
	backend, connStr, err := registryBackend()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = registry.GetRegistryDBFilePath()
	}

	cfg.RegistryBackend = backend
	cfg.RegistryDBConnect = connStr

	return nil
}

// registryMigrateSetupWrapper wraps registryMigrateSetup to provide PreRunE for migrate command.
func registryMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return registryMigrateSetup()
}

// registryCmd focused on build registry management.
//
// Note: Registry subcommands use minimal initialization (registrySetup) instead of
// the full sharedSetup used by compile commands.
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the build registry of compile runs",
	Long: `Manage the build registry that records every compile run.

When enabled with --registry-backend, each compile run stores:
- Run metadata (timestamp, input, configuration, duration)
- One row per grid point with its parameters, status and document digest

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show registry statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all registry data
  migrate - Run database schema migrations

Examples:
  # Check registry status
  scorecard registry status --registry-backend sqlite

  # Export for analysis in pandas/DuckDB
  scorecard registry export --registry-backend sqlite --output-file builds`,
}

// registryClearCmd clears the registry data.
var registryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all compile runs and model records",
	Long: `Delete all stored compile runs and model records.

For SQLite the database file is removed. For MySQL and PostgreSQL the
registry tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  scorecard registry export --registry-backend sqlite --output-file backup
  scorecard registry clear --registry-backend sqlite`,
	PreRunE: registrySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the SQLite file before removing it
		registry.CloseRegistry()
		if err := registry.ClearRegistry(cfg.RegistryBackend, registry.GetRegistryDBFilePath(), cfg.RegistryDBConnect); err != nil {
			contract.LogFatal("Failed to clear registry data", err)
		}
		fmt.Println("Registry data cleared successfully.")
	},
}

// registryStatusCmd shows registry status.
var registryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display registry statistics and connection details",
	Long: `Show detailed information about the build registry.

Displays:
- Backend type and connection status
- Total number of compile runs stored
- Last and oldest run timestamps
- Total and failed models across all runs
- Database table sizes

Examples:
  scorecard registry status --registry-backend sqlite`,
	PreRunE: registrySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := registry.Manager.GetRegistryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get registry status", err)
		}
		registry.PrintRegistryStatus(status)
	},
}

// registryExportCmd exports registry data to Parquet files.
var registryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export compile runs and model records to Parquet",
	Long: `Export all stored registry data to Parquet format for use with analytics tools.

Exports two datasets named after --output-file:
- <output-file>.compile_runs.parquet - metadata about each compile run
- <output-file>.models.parquet - one row per compiled grid point

Requires: --output-file parameter

Examples:
  scorecard registry export --registry-backend sqlite --output-file builds
  duckdb -c "SELECT * FROM read_parquet('builds.models.parquet') LIMIT 10"`,
	PreRunE: registrySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := registry.ExecuteRegistryExport(registry.Manager, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export registry data", err)
		}
	},
}

// registryMigrateCmd runs database migrations for the registry store.
var registryMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the build registry.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  scorecard registry migrate --registry-backend sqlite

  # Migrate to specific version
  scorecard registry migrate --registry-backend sqlite --target-version 1

  # Rollback everything
  scorecard registry migrate --registry-backend sqlite --target-version 0`,
	PreRunE: registryMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := registry.MigrateRegistry(cfg.RegistryBackend, cfg.RegistryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
