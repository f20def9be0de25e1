package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/internal/iostore"
	"github.com/engramdev/engram/internal/outwriter"
	"github.com/engramdev/engram/internal/parquet"
	"github.com/engramdev/engram/schema"
)

// ExecuteSnapshotsList prints stored snapshot metadata, newest first.
func ExecuteSnapshotsList(_ context.Context, cfg *contract.Config, store contract.SnapshotStore) error {
	limit := cfg.SnapshotLimit
	if !cfg.SnapshotSince.IsZero() {
		// The time filter runs after the fetch, so fetch everything and
		// re-apply the cap on what survives.
		limit = 0
	}

	metas, err := store.List(limit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if !cfg.SnapshotSince.IsZero() {
		metas = filterSince(metas, cfg.SnapshotSince)
		if cfg.SnapshotLimit > 0 && len(metas) > cfg.SnapshotLimit {
			metas = metas[:cfg.SnapshotLimit]
		}
	}

	return outwriter.NewOutWriter().WriteSnapshots(metas, cfg)
}

// filterSince keeps the snapshots created after the cutoff.
func filterSince(metas []schema.SnapshotMeta, since time.Time) []schema.SnapshotMeta {
	var kept []schema.SnapshotMeta
	for _, meta := range metas {
		if meta.CreatedAt.After(since) {
			kept = append(kept, meta)
		}
	}
	return kept
}

// ExecuteSnapshotsExport performs the actual export of snapshot data to a
// Parquet file.
func ExecuteSnapshotsExport(_ context.Context, cfg *contract.Config, store contract.SnapshotStore) error {
	// Validate that output file is specified
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for export")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get snapshot status: %w", err)
	}
	if status.TotalSnapshots == 0 {
		return errors.New("no snapshot data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total snapshots: %d\n", status.TotalSnapshots)

	// Retrieve all snapshots with their record payloads
	rows, err := store.GetRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshots: %w", err)
	}

	// Convert to Parquet format and write
	parquetRows := parquet.ConvertSnapshotRows(rows)
	if err := parquet.WriteSnapshotsParquet(parquetRows, cfg.OutputFile); err != nil {
		return fmt.Errorf("failed to write snapshots: %w", err)
	}
	fmt.Printf("Exported %d snapshots to: %s\n", len(parquetRows), cfg.OutputFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}

// ExecuteSnapshotsPrune deletes snapshots created before the configured
// cutoff.
func ExecuteSnapshotsPrune(_ context.Context, cfg *contract.Config, store contract.SnapshotStore) error {
	if cfg.PruneBefore.IsZero() {
		return errors.New("--older-than is required for prune")
	}

	removed, err := store.Prune(cfg.PruneBefore)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	fmt.Printf("Pruned %d snapshots created before %s\n", removed, cfg.PruneBefore.UTC().Format(contract.DateTimeFormat))
	return nil
}

// ExecuteSnapshotsStatus reports connection state and row counts for the
// configured snapshot store.
func ExecuteSnapshotsStatus(_ context.Context, cfg *contract.Config, store contract.SnapshotStore) error {
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get snapshot status: %w", err)
	}
	return outwriter.NewOutWriter().WriteStatus(status, cfg)
}

// ExecuteSnapshotsMigrate runs store schema migrations. Migration opens its
// own connection, so no store is injected.
func ExecuteSnapshotsMigrate(_ context.Context, cfg *contract.Config) error {
	return iostore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, cfg.MigrateVersion)
}
