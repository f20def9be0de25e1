package outwriter

import (
	"errors"
	"fmt"
	"io"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSnapshotResults outputs stored snapshot metadata, dispatching based on the output format configured.
func WriteSnapshotResults(metas []schema.SnapshotMeta, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, metas)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		return errors.New("parquet output applies to 'snapshots export', not listings")
	default:
		// Default to the table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotTable(metas, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// WriteStatusResults outputs snapshot store state, dispatching based on the output format configured.
func WriteStatusResults(status schema.SnapshotStoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		return errors.New("parquet output applies to 'snapshots export', not status")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStoreStatus(status, w)
		}, "Wrote status")
	}
	return nil
}

// writeStoreStatus prints store state as key/value lines. Row counts and
// timestamps only appear for a reachable store.
func writeStoreStatus(status schema.SnapshotStoreStatus, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Store Backend: %s\n", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Connected: %t\n", status.Connected); err != nil {
		return err
	}
	if !status.Connected {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Total Snapshots: %d\n", status.TotalSnapshots); err != nil {
		return err
	}
	if status.TotalSnapshots > 0 {
		if _, err := fmt.Fprintf(w, "Last Snapshot: %s\n", status.LastSnapshot.Format(contract.DateTimeFormat)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Oldest Snapshot: %s\n", status.OldestSnapshot.Format(contract.DateTimeFormat)); err != nil {
			return err
		}
	}
	return nil
}

// writeSnapshotTable renders one row per stored snapshot, newest first.
func writeSnapshotTable(metas []schema.SnapshotMeta, cfg *contract.Config, w io.Writer) error {
	if len(metas) == 0 {
		_, err := fmt.Fprintln(w, "No snapshots found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Repo", "Path", "Created"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxPathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for _, meta := range metas {
		data = append(data, []string{
			meta.ID,
			meta.RepoName,
			contract.TruncatePath(meta.RepoPath, maxPathWidth),
			meta.CreatedAt.UTC().Format(contract.DateTimeFormat),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d snapshots\n", len(metas))
	return err
}
