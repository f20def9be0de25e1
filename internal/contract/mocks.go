package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/engramdev/engram/schema"
)

// --- MockHistoryProvider Implementation ---

// MockHistoryProvider is an autogenerated mock type for the HistoryProvider type.
type MockHistoryProvider struct {
	mock.Mock
}

var _ HistoryProvider = &MockHistoryProvider{} // Compile-time check

// HasHistory implements the contract.HistoryProvider interface.
func (m *MockHistoryProvider) HasHistory(root string) bool {
	ret := m.Called(root)
	return ret.Bool(0)
}

// RecentCommits implements the contract.HistoryProvider interface.
func (m *MockHistoryProvider) RecentCommits(ctx context.Context, root string, limit int) ([]schema.CommitInfo, error) {
	ret := m.Called(ctx, root, limit)
	commits, _ := ret.Get(0).([]schema.CommitInfo)
	return commits, ret.Error(1)
}

// CommitCount implements the contract.HistoryProvider interface.
func (m *MockHistoryProvider) CommitCount(ctx context.Context, root string) (int, error) {
	ret := m.Called(ctx, root)
	return ret.Int(0), ret.Error(1)
}

// FirstCommitDate implements the contract.HistoryProvider interface.
func (m *MockHistoryProvider) FirstCommitDate(ctx context.Context, root string) (string, error) {
	ret := m.Called(ctx, root)
	return ret.String(0), ret.Error(1)
}

// TopContributors implements the contract.HistoryProvider interface.
func (m *MockHistoryProvider) TopContributors(ctx context.Context, root string, limit int) ([]schema.Contributor, error) {
	ret := m.Called(ctx, root, limit)
	contributors, _ := ret.Get(0).([]schema.Contributor)
	return contributors, ret.Error(1)
}

// --- MockModelClient Implementation ---

// MockModelClient is an autogenerated mock type for the ModelClient type.
type MockModelClient struct {
	mock.Mock
}

var _ ModelClient = &MockModelClient{} // Compile-time check

// Name implements the contract.ModelClient interface.
func (m *MockModelClient) Name() string {
	ret := m.Called()
	return ret.String(0)
}

// EnsureReady implements the contract.ModelClient interface.
func (m *MockModelClient) EnsureReady(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

// Generate implements the contract.ModelClient interface.
func (m *MockModelClient) Generate(ctx context.Context, prompt string) (string, error) {
	ret := m.Called(ctx, prompt)
	return ret.String(0), ret.Error(1)
}

// GenerateJSON implements the contract.ModelClient interface.
func (m *MockModelClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	ret := m.Called(ctx, prompt)
	return ret.String(0), ret.Error(1)
}

// --- MockSnapshotStore Implementation ---

// MockSnapshotStore is an autogenerated mock type for the SnapshotStore type.
type MockSnapshotStore struct {
	mock.Mock
}

var _ SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Put implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) Put(record *schema.RepoAnalysis) (string, error) {
	ret := m.Called(record)
	return ret.String(0), ret.Error(1)
}

// GetLatest implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) GetLatest(repoName string) (*schema.SnapshotRow, error) {
	ret := m.Called(repoName)
	row, _ := ret.Get(0).(*schema.SnapshotRow)
	return row, ret.Error(1)
}

// List implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) List(limit int) ([]schema.SnapshotMeta, error) {
	ret := m.Called(limit)
	metas, _ := ret.Get(0).([]schema.SnapshotMeta)
	return metas, ret.Error(1)
}

// GetRecords implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) GetRecords() ([]schema.SnapshotRow, error) {
	ret := m.Called()
	rows, _ := ret.Get(0).([]schema.SnapshotRow)
	return rows, ret.Error(1)
}

// Prune implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) Prune(olderThan time.Time) (int, error) {
	ret := m.Called(olderThan)
	return ret.Int(0), ret.Error(1)
}

// GetStatus implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.SnapshotStoreStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.SnapshotStoreStatus)
	return status, ret.Error(1)
}

// Close implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
