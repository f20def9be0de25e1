package contract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/engramdev/engram/schema"
)

// Default values for configuration.
const (
	DefaultOutputDir  = ".engram"
	DefaultServePort  = 8420
	DefaultGitTimeout = 10 * time.Second
)

// DateFormat is the day-granular date representation used in analysis records.
const DateFormat = "2006-01-02"

// DateTimeFormat is the second-granular timestamp representation used in
// console output.
const DateTimeFormat = "2006-01-02 15:04:05"

// Config holds the runtime configuration for one invocation.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath  string // Absolute path of the repository to analyze
	RepoName  string // Base name, used for snapshot rows and output grouping
	OrgName   string // Attribution org for generated docs; empty means derive
	OutputDir string // Where skills, memories and the record JSON are written

	Output     schema.OutputMode
	OutputFile string

	Provider  schema.ModelProvider
	Model     string
	ModelHost string
	SkipModel bool // Analysis only, skip doc generation
	JSONOnly  bool // Print the record to stdout, write nothing

	StoreSnapshots bool
	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	AnalysisTimeout time.Duration // Zero means no top-level deadline
	GitTimeout      time.Duration // Per history query

	SnapshotLimit  int       // Cap on listing rows, 0 = all
	SnapshotSince  time.Time // Listing filter, zero = no filter
	PruneBefore    time.Time // Prune cutoff, zero = unset
	MigrateVersion int       // Migration target, negative = latest

	ServePort int
	ServeDir  string

	UseColors bool
	Width     int // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	TargetStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputDir      string `mapstructure:"output-dir"`
	Org            string `mapstructure:"org"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Provider       string `mapstructure:"provider"`
	Model          string `mapstructure:"model"`
	ModelHost      string `mapstructure:"model-host"`
	SkipModel      bool   `mapstructure:"skip-model"`
	JSONOnly       bool   `mapstructure:"json-only"`
	Store          string `mapstructure:"store"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Timeout        string `mapstructure:"timeout"`
	GitTimeout     string `mapstructure:"git-timeout"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`

	// --- Fields from snapshots subcommand flags ---
	Limit          int    `mapstructure:"limit"`
	Since          string `mapstructure:"since"`
	OlderThan      string `mapstructure:"older-than"`
	MigrateVersion int    `mapstructure:"version"`

	// --- Fields from serveCmd.Flags() ---
	Port int `mapstructure:"port"`
}

// Clone returns a copy of the Config struct. Handlers that adjust per-request
// settings work on a clone so the shared config never mutates.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeouts(cfg, input); err != nil {
		return err
	}
	if err := processSnapshotInputs(cfg, input); err != nil {
		return err
	}
	return resolveRepoPath(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
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

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OrgName = input.Org
	cfg.OutputFile = input.OutputFile
	cfg.Model = input.Model
	cfg.ModelHost = input.ModelHost
	cfg.SkipModel = input.SkipModel
	cfg.JSONOnly = input.JSONOnly

	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// Parse store flag
	store, err := ParseBoolString(input.Store)
	if err != nil {
		return fmt.Errorf("invalid --store value: %w", err)
	}
	cfg.StoreSnapshots = store

	// --- 1. Width Validation ---
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, parquet", input.Output)
	}

	// --- 3. Provider Validation ---
	cfg.Provider = schema.ModelProvider(strings.ToLower(input.Provider))
	if _, ok := schema.ValidModelProviders[cfg.Provider]; !ok {
		return fmt.Errorf("invalid provider '%s'. must be ollama, gemini, none", input.Provider)
	}

	// --- 4. Store Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	// --- 5. Serve Port Validation ---
	cfg.ServePort = input.Port
	if cfg.ServePort == 0 {
		cfg.ServePort = DefaultServePort
	}
	if cfg.ServePort < 1 || cfg.ServePort > 65535 {
		return fmt.Errorf("port must be between 1 and 65535 (received %d)", input.Port)
	}

	return nil
}

// processTimeouts parses the top-level deadline and the per-query git timeout.
func processTimeouts(cfg *Config, input *ConfigRawInput) error {
	if input.Timeout != "" {
		timeout, err := ParseLookbackDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout value: %w", err)
		}
		cfg.AnalysisTimeout = timeout
	}

	cfg.GitTimeout = DefaultGitTimeout
	if input.GitTimeout != "" {
		timeout, err := ParseLookbackDuration(input.GitTimeout)
		if err != nil {
			return fmt.Errorf("invalid --git-timeout value: %w", err)
		}
		cfg.GitTimeout = timeout
	}

	return nil
}

// processSnapshotInputs parses the snapshots subcommand inputs. --since takes
// a relative time ("2 weeks ago"), --older-than a plain age ("30 days").
func processSnapshotInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Limit < 0 {
		return fmt.Errorf("limit cannot be negative (received %d)", input.Limit)
	}
	cfg.SnapshotLimit = input.Limit
	cfg.MigrateVersion = input.MigrateVersion

	now := time.Now()
	if input.Since != "" {
		since, err := ParseRelativeTime(input.Since, now)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.SnapshotSince = since
	}
	if input.OlderThan != "" {
		age, err := ParseLookbackDuration(input.OlderThan)
		if err != nil {
			return fmt.Errorf("invalid --older-than value: %w", err)
		}
		cfg.PruneBefore = now.Add(-age)
	}
	return nil
}

// resolveRepoPath normalizes the analysis target into an absolute repo path.
// Commands without a repository target (serve, models, mcp) leave TargetStr
// empty; existence of the path is the engine's own fatal check, so it is not
// duplicated here.
func resolveRepoPath(cfg *Config, input *ConfigRawInput) error {
	if input.TargetStr == "" {
		return nil
	}

	absPath, err := filepath.Abs(input.TargetStr)
	if err != nil {
		return err
	}
	cfg.RepoPath = filepath.Clean(absPath)
	cfg.RepoName = filepath.Base(cfg.RepoPath)
	return nil
}
