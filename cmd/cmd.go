// Package cmd defines the command-line interface for engram.
package cmd

import (
	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the snapshots subcommands to the parent snapshots command
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsExportCmd)
	snapshotsCmd.AddCommand(snapshotsPruneCmd)
	snapshotsCmd.AddCommand(snapshotsStatusCmd)
	snapshotsCmd.AddCommand(snapshotsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("git-timeout", "", "Timeout for each Git history query (e.g., '30s')")
	rootCmd.PersistentFlags().Bool("json-only", false, "Output raw JSON to stdout (for piping)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model name for the selected provider")
	rootCmd.PersistentFlags().String("model-host", "", "Base URL of the Ollama server")
	rootCmd.PersistentFlags().String("org", "", "Organization or owner name attributed in generated docs")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or parquet")
	rootCmd.PersistentFlags().String("output-dir", contract.DefaultOutputDir, "Directory where skills, memories and the analysis record are written")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("provider", string(schema.OllamaProvider), "Model provider: ollama or gemini or none")
	rootCmd.PersistentFlags().Bool("skip-model", false, "Heuristic-only analysis, no model inference")
	rootCmd.PersistentFlags().String("timeout", "", "Top-level analysis deadline (e.g., '10 minutes')")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store", "no", "Store a snapshot of each analysis run (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Snapshot store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().IntP("port", "p", contract.DefaultServePort, "Port to serve the viewer on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of snapshotsListCmd to Viper
	snapshotsListCmd.Flags().IntP("limit", "l", 0, "Number of snapshots to display (0 means all)")
	snapshotsListCmd.Flags().String("since", "", "Only list snapshots created after this point (e.g., '2 weeks ago')")
	if err := viper.BindPFlags(snapshotsListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshots list flags", err)
	}

	// Bind all flags of snapshotsPruneCmd to Viper
	snapshotsPruneCmd.Flags().String("older-than", "", "Delete snapshots older than this age (e.g., '30 days')")
	if err := viper.BindPFlags(snapshotsPruneCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshots prune flags", err)
	}

	// Bind all flags of snapshotsMigrateCmd to Viper
	snapshotsMigrateCmd.Flags().Int("version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(snapshotsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshots migrate flags", err)
	}
}
