package schema

import "time"

// SnapshotRow represents a row from the engram_snapshots table.
type SnapshotRow struct {
	ID        string    // UUID assigned at insert
	RepoName  string    // Repository directory name
	RepoPath  string    // Absolute path as analyzed
	CreatedAt time.Time // Insert time, UTC
	Record    string    // JSON-encoded RepoAnalysis
}

// SnapshotMeta is the listing view of a stored snapshot, without the record
// payload.
type SnapshotMeta struct {
	ID        string    `json:"id"`
	RepoName  string    `json:"repo_name"`
	RepoPath  string    `json:"repo_path"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotStoreStatus summarizes snapshot store state for status output.
type SnapshotStoreStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	TotalSnapshots int       `json:"total_snapshots"`
	LastSnapshot   time.Time `json:"last_snapshot_time"`
	OldestSnapshot time.Time `json:"oldest_snapshot_time"`
}
