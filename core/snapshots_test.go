package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/schema"
)

// TestExecuteSnapshotsList tests the snapshot listing entry point.
func TestExecuteSnapshotsList(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	metas := []schema.SnapshotMeta{
		{ID: "snap-aaa", RepoName: "demo", RepoPath: "/tmp/demo", CreatedAt: now.Add(-time.Hour)},
		{ID: "snap-bbb", RepoName: "demo", RepoPath: "/tmp/demo", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "snap-ccc", RepoName: "old", RepoPath: "/tmp/old", CreatedAt: now.Add(-30 * 24 * time.Hour)},
	}

	t.Run("limit passes through to the store", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("List", 2).Return(metas[:2], nil)

		outPath := filepath.Join(t.TempDir(), "snapshots.txt")
		cfg := &contract.Config{Output: schema.TextOut, OutputFile: outPath, SnapshotLimit: 2}

		err := ExecuteSnapshotsList(ctx, cfg, mockStore)
		require.NoError(t, err)

		out, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(out), "snap-aaa")
		assert.Contains(t, string(out), "Showing 2 snapshots")
		mockStore.AssertExpectations(t)
	})

	t.Run("since filter fetches everything then trims", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("List", 0).Return(metas, nil)

		outPath := filepath.Join(t.TempDir(), "snapshots.txt")
		cfg := &contract.Config{
			Output:        schema.TextOut,
			OutputFile:    outPath,
			SnapshotLimit: 1,
			SnapshotSince: now.Add(-7 * 24 * time.Hour),
		}

		err := ExecuteSnapshotsList(ctx, cfg, mockStore)
		require.NoError(t, err)

		// Two snapshots survive the cutoff; the limit keeps the newest one.
		out, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(out), "snap-aaa")
		assert.NotContains(t, string(out), "snap-bbb")
		assert.NotContains(t, string(out), "snap-ccc")
		mockStore.AssertCalled(t, "List", 0)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("List", 0).Return(nil, errors.New("connection refused"))

		cfg := &contract.Config{Output: schema.TextOut}

		err := ExecuteSnapshotsList(ctx, cfg, mockStore)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list snapshots")
	})
}

// TestFilterSince tests the listing cutoff filter.
func TestFilterSince(t *testing.T) {
	now := time.Now().UTC()
	cutoff := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		metas    []schema.SnapshotMeta
		expected []string
	}{
		{
			name:     "empty input",
			metas:    nil,
			expected: nil,
		},
		{
			name: "all newer than cutoff",
			metas: []schema.SnapshotMeta{
				{ID: "a", CreatedAt: now.Add(-time.Hour)},
				{ID: "b", CreatedAt: now.Add(-2 * time.Hour)},
			},
			expected: []string{"a", "b"},
		},
		{
			name: "older entries drop",
			metas: []schema.SnapshotMeta{
				{ID: "a", CreatedAt: now.Add(-time.Hour)},
				{ID: "b", CreatedAt: now.Add(-48 * time.Hour)},
			},
			expected: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept := filterSince(tt.metas, cutoff)
			var ids []string
			for _, meta := range kept {
				ids = append(ids, meta.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

// TestExecuteSnapshotsExport tests the Parquet export entry point.
func TestExecuteSnapshotsExport(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an output file", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		cfg := &contract.Config{}

		err := ExecuteSnapshotsExport(ctx, cfg, mockStore)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file is required")
	})

	t.Run("empty store has nothing to export", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("GetStatus").Return(schema.SnapshotStoreStatus{Backend: "sqlite", Connected: true}, nil)

		cfg := &contract.Config{OutputFile: filepath.Join(t.TempDir(), "out.parquet")}

		err := ExecuteSnapshotsExport(ctx, cfg, mockStore)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no snapshot data found to export")
	})

	t.Run("status errors propagate", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("GetStatus").Return(schema.SnapshotStoreStatus{}, errors.New("bad handshake"))

		cfg := &contract.Config{OutputFile: filepath.Join(t.TempDir(), "out.parquet")}

		err := ExecuteSnapshotsExport(ctx, cfg, mockStore)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get snapshot status")
	})

	t.Run("writes a parquet file", func(t *testing.T) {
		record, err := json.Marshal(&schema.RepoAnalysis{
			Name:       "demo",
			Path:       "/tmp/demo",
			TotalFiles: 42,
			Languages:  map[string]float64{"Go": 100.0},
			HasTests:   true,
		})
		require.NoError(t, err)

		now := time.Now().UTC()
		rows := []schema.SnapshotRow{
			{ID: "snap-aaa", RepoName: "demo", RepoPath: "/tmp/demo", CreatedAt: now, Record: string(record)},
			{ID: "snap-bbb", RepoName: "demo", RepoPath: "/tmp/demo", CreatedAt: now.Add(-time.Hour), Record: string(record)},
		}

		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("GetStatus").Return(schema.SnapshotStoreStatus{
			Backend:        "sqlite",
			Connected:      true,
			TotalSnapshots: len(rows),
		}, nil)
		mockStore.On("GetRecords").Return(rows, nil)

		outPath := filepath.Join(t.TempDir(), "snapshots.parquet")
		cfg := &contract.Config{OutputFile: outPath}

		err = ExecuteSnapshotsExport(ctx, cfg, mockStore)
		require.NoError(t, err)

		info, err := os.Stat(outPath)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
		mockStore.AssertExpectations(t)
	})
}

// TestExecuteSnapshotsPrune tests the snapshot pruning entry point.
func TestExecuteSnapshotsPrune(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a cutoff", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		cfg := &contract.Config{}

		err := ExecuteSnapshotsPrune(ctx, cfg, mockStore)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "--older-than is required")
	})

	t.Run("prunes at the configured cutoff", func(t *testing.T) {
		cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("Prune", cutoff).Return(3, nil)

		cfg := &contract.Config{PruneBefore: cutoff}

		err := ExecuteSnapshotsPrune(ctx, cfg, mockStore)
		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("Prune", cutoff).Return(0, errors.New("table locked"))

		cfg := &contract.Config{PruneBefore: cutoff}

		err := ExecuteSnapshotsPrune(ctx, cfg, mockStore)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to prune snapshots")
	})
}

// TestExecuteSnapshotsStatus tests the store status entry point.
func TestExecuteSnapshotsStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("connected store reports counts", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("GetStatus").Return(schema.SnapshotStoreStatus{
			Backend:        "mysql",
			Connected:      true,
			TotalSnapshots: 5,
			LastSnapshot:   now,
			OldestSnapshot: now.Add(-72 * time.Hour),
		}, nil)

		outPath := filepath.Join(t.TempDir(), "status.txt")
		cfg := &contract.Config{Output: schema.TextOut, OutputFile: outPath}

		err := ExecuteSnapshotsStatus(ctx, cfg, mockStore)
		require.NoError(t, err)

		out, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(out), "Store Backend: mysql")
		assert.Contains(t, string(out), "Connected: true")
		assert.Contains(t, string(out), "Total Snapshots: 5")
		assert.Contains(t, string(out), "Last Snapshot:")
	})

	t.Run("disconnected store stops at connectivity", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("GetStatus").Return(schema.SnapshotStoreStatus{
			Backend:   "postgres",
			Connected: false,
		}, nil)

		outPath := filepath.Join(t.TempDir(), "status.txt")
		cfg := &contract.Config{Output: schema.TextOut, OutputFile: outPath}

		err := ExecuteSnapshotsStatus(ctx, cfg, mockStore)
		require.NoError(t, err)

		out, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(out), "Connected: false")
		assert.NotContains(t, string(out), "Total Snapshots")
	})

	t.Run("json output", func(t *testing.T) {
		mockStore := &contract.MockSnapshotStore{}
		mockStore.On("GetStatus").Return(schema.SnapshotStoreStatus{
			Backend:        "sqlite",
			Connected:      true,
			TotalSnapshots: 1,
			LastSnapshot:   now,
			OldestSnapshot: now,
		}, nil)

		outPath := filepath.Join(t.TempDir(), "status.json")
		cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outPath}

		err := ExecuteSnapshotsStatus(ctx, cfg, mockStore)
		require.NoError(t, err)

		out, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(out), `"backend": "sqlite"`)
		assert.Contains(t, string(out), `"total_snapshots": 1`)
	})
}

// TestExecuteSnapshotsMigrate tests the migration entry point.
func TestExecuteSnapshotsMigrate(t *testing.T) {
	ctx := context.Background()

	// The none backend has no schema to migrate.
	cfg := &contract.Config{StoreBackend: schema.NoneBackend, MigrateVersion: -1}

	err := ExecuteSnapshotsMigrate(ctx, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not supported for NoneBackend")
}
