package cmd

import (
	"github.com/engramdev/engram/core"
	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/internal/iostore"
	"github.com/spf13/cobra"
)

// withSnapshotStore opens the configured snapshot store, runs fn against it
// and closes the store afterwards.
func withSnapshotStore(fn func(store contract.SnapshotStore) error) error {
	store, err := iostore.NewSnapshotStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

// snapshotsCmd focused on snapshot management.
//
// Note: Snapshot subcommands run the shared setup for flag parsing but have
// no analysis target, so they work from any directory.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage stored analysis snapshots",
	Long: `Manage the analysis snapshots kept when runs use --store yes.

Each snapshot holds the repository name and path, a creation timestamp and
the complete analysis record as JSON. Accumulated snapshots enable
before/after comparison of a codebase and data export for analytics.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show stored snapshots, newest first
  export  - Export snapshots to Parquet for analytics
  prune   - Delete snapshots older than a cutoff
  status  - Show store statistics and connection info
  migrate - Run database schema migrations

Examples:
  # Keep a snapshot of an analysis run
  engram analyze . --store yes

  # See what has accumulated
  engram snapshots list`,
}

// snapshotsListCmd lists stored snapshots.
var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show stored snapshots, newest first",
	Long: `List the snapshots in the configured store, newest first.

Displays per snapshot:
- Snapshot ID
- Repository name and path
- Creation timestamp

Examples:
  # Show everything
  engram snapshots list

  # Show the five most recent snapshots
  engram snapshots list --limit 5

  # Show what was stored this month
  engram snapshots list --since "1 month ago"

  # Machine-readable form
  engram snapshots list --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSnapshotStore(func(store contract.SnapshotStore) error {
			return core.ExecuteSnapshotsList(rootCtx, cfg, store)
		})
	},
}

// snapshotsExportCmd exports snapshot data to Parquet files.
var snapshotsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored snapshots to Parquet for analytics",
	Long: `Export all stored snapshots to a Parquet file for use with analytics tools.

Rows are flattened from the stored analysis records, one per snapshot, with
file counts, language and framework lists, history totals and timestamps.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all snapshots
  engram snapshots export --output-file snapshots.parquet

  # Query the export with DuckDB
  duckdb -c "SELECT repo_name, total_files FROM read_parquet('snapshots.parquet')"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSnapshotStore(func(store contract.SnapshotStore) error {
			return core.ExecuteSnapshotsExport(rootCtx, cfg, store)
		})
	},
}

// snapshotsPruneCmd deletes old snapshots.
var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete snapshots older than a cutoff",
	Long: `Delete every snapshot created before the --older-than cutoff.

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- The store has grown past what you want to keep
- Old analyses no longer reflect the codebase

Examples:
  # Export before pruning
  engram snapshots export --output-file backup.parquet
  engram snapshots prune --older-than "90 days"

  # Drop everything older than a year
  engram snapshots prune --older-than "1 year"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSnapshotStore(func(store contract.SnapshotStore) error {
			return core.ExecuteSnapshotsPrune(rootCtx, cfg, store)
		})
	},
}

// snapshotsStatusCmd shows snapshot store status.
var snapshotsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the snapshot store.

Displays:
- Backend type and connection status
- Total number of stored snapshots
- Last and oldest snapshot timestamps

Use this to:
- Verify snapshot storage is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check store status
  engram snapshots status`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSnapshotStore(func(store contract.SnapshotStore) error {
			return core.ExecuteSnapshotsStatus(rootCtx, cfg, store)
		})
	},
}

// snapshotsMigrateCmd runs database migrations for the snapshot store.
//
// Note: Migration opens its own connection instead of going through
// withSnapshotStore, so it can run against a fresh database.
var snapshotsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the snapshot store.

Migrations allow:
- Upgrading to new schema versions when engram is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --version for specific versions.

Examples:
  # Migrate to latest version (default)
  engram snapshots migrate

  # Migrate to specific version
  engram snapshots migrate --version 2

  # Rollback to previous version
  engram snapshots migrate --version 0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSnapshotsMigrate(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
