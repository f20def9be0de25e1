// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/engramdev/engram/schema"
)

// HistoryProvider defines the read-only queries against version-control
// history. The analysis engine only talks to this interface, so it can be
// tested without a real git executable and a native repository-format reader
// could be substituted later.
type HistoryProvider interface {
	// HasHistory reports whether root carries version-control metadata.
	// No subprocess is spawned when this returns false.
	HasHistory(root string) bool

	// RecentCommits returns up to limit commits, newest first.
	RecentCommits(ctx context.Context, root string, limit int) ([]schema.CommitInfo, error)

	// CommitCount returns the total number of commits reachable from HEAD.
	CommitCount(ctx context.Context, root string) (int, error)

	// FirstCommitDate returns the date of the oldest commit in YYYY-MM-DD form.
	FirstCommitDate(ctx context.Context, root string) (string, error)

	// TopContributors returns up to limit authors ordered by commit count,
	// merge commits excluded.
	TopContributors(ctx context.Context, root string, limit int) ([]schema.Contributor, error)
}

// ModelClient defines the operations of a text-completion backend used by
// the doc generator. This allows the generator to be tested with a fake
// client and keeps provider selection out of the generation logic.
type ModelClient interface {
	// Name identifies the provider/model pair for progress output.
	Name() string

	// EnsureReady verifies the backend is reachable and the configured model
	// is available, pulling or provisioning it when the backend supports that.
	EnsureReady(ctx context.Context) error

	// Generate returns a plain-text completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateJSON returns a completion constrained to a JSON object.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// SnapshotStore defines the interface for persisted analysis snapshots.
// This allows mocking the store for testing.
type SnapshotStore interface {
	// Put stores one analysis record and returns the assigned snapshot ID.
	Put(analysis *schema.RepoAnalysis) (string, error)

	// GetLatest returns the most recent snapshot for a repository name,
	// or nil when none exists.
	GetLatest(repoName string) (*schema.SnapshotRow, error)

	// List returns snapshot metadata, newest first.
	List(limit int) ([]schema.SnapshotMeta, error)

	// GetRecords returns every snapshot with its full record payload, newest
	// first. Used by the export path.
	GetRecords() ([]schema.SnapshotRow, error)

	// Prune deletes snapshots created before the cutoff and reports how many
	// rows were removed.
	Prune(olderThan time.Time) (int, error)

	// GetStatus returns status information about the snapshot store.
	GetStatus() (schema.SnapshotStoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
