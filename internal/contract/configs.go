package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/scorecard/schema"
)

// Default values for configuration.
const (
	DefaultScoringTimeout = 10 * time.Second
	MaxWorkers            = 256
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the compiler.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath  string // "-" reads stdin
	Output     schema.OutputMode
	OutputFile string
	OutputDir  string
	Workers    int
	FailFast   bool
	Width      int // Terminal width override (0 = auto-detect)

	RegistryBackend   schema.DatabaseBackend
	RegistryDBConnect string // Please use env var as this is plaintext

	Endpoint  string
	ModelPath string
	Query     string
	QueryFile string
	QueryID   string
	Raw       bool
	Timeout   time.Duration

	UseEmojis bool // Enable emojis in status lines
	UseColors bool // Enable colored section headers in table output
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Workers           int    `mapstructure:"workers"`
	Width             int    `mapstructure:"width"`
	RegistryBackend   string `mapstructure:"registry-backend"`
	RegistryDBConnect string `mapstructure:"registry-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from compileCmd.Flags() ---
	OutputDir string `mapstructure:"output-dir"`
	FailFast  bool   `mapstructure:"fail-fast"`

	// --- Fields from scoreCmd.Flags() ---
	Endpoint  string `mapstructure:"endpoint"`
	Model     string `mapstructure:"model"`
	Query     string `mapstructure:"query"`
	QueryFile string `mapstructure:"query-file"`
	ID        string `mapstructure:"id"`
	Raw       bool   `mapstructure:"raw"`
	Timeout   string `mapstructure:"timeout"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigParams returns the settings worth recording alongside a compile run.
func (c *Config) ConfigParams() map[string]any {
	params := map[string]any{
		"input":     c.InputPath,
		"output":    string(c.Output),
		"workers":   c.Workers,
		"fail_fast": c.FailFast,
	}
	if c.OutputDir != "" {
		params["output_dir"] = c.OutputDir
	}
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processScoringInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("registry-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("registry-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the registry backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.RegistryBackend = schema.DatabaseBackend(strings.ToLower(input.RegistryBackend))
	if cfg.RegistryBackend == "" {
		cfg.RegistryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RegistryBackend]; !ok {
		return fmt.Errorf("invalid registry backend '%s'. must be sqlite, mysql, postgresql, none", input.RegistryBackend)
	}
	cfg.RegistryDBConnect = input.RegistryDBConnect
	return ValidateDatabaseConnectionString(cfg.RegistryBackend, cfg.RegistryDBConnect)
}

// validateSimpleInputs processes and validates the shared flags.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputPath = strings.TrimSpace(input.InputPathStr)
	if cfg.InputPath == "" {
		cfg.InputPath = "-"
	}
	cfg.OutputFile = input.OutputFile
	cfg.OutputDir = input.OutputDir
	cfg.FailFast = input.FailFast
	cfg.Width = input.Width

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be greater than 0 and cannot exceed %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Width Validation ---
	if cfg.Width < 0 {
		return fmt.Errorf("width must not be negative (received %d)", cfg.Width)
	}

	if cfg.OutputDir != "" && cfg.OutputFile != "" {
		return fmt.Errorf("--output-dir and --output-file cannot be used together")
	}
	return nil
}

// processScoringInputs handles the scoring client flags. They are only
// checked for shape here; the score command requires what it needs.
func processScoringInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(input.Endpoint), "/")
	cfg.ModelPath = strings.Trim(strings.TrimSpace(input.Model), "/")
	cfg.Query = input.Query
	cfg.QueryFile = input.QueryFile
	cfg.QueryID = input.ID
	cfg.Raw = input.Raw

	if cfg.Query != "" && cfg.QueryFile != "" {
		return fmt.Errorf("--query and --query-file cannot be used together")
	}
	if cfg.Endpoint != "" && !strings.HasPrefix(cfg.Endpoint, "http://") && !strings.HasPrefix(cfg.Endpoint, "https://") {
		return fmt.Errorf("endpoint must start with http:// or https:// (received %q)", input.Endpoint)
	}

	cfg.Timeout = DefaultScoringTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout value: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive (received %s)", d)
		}
		cfg.Timeout = d
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
