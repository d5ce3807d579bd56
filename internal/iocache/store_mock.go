package iocache

import (
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetAnalysisStore implements the StoreManager interface.
func (m *MockStoreManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginRun(rootPath string, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(rootPath, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndRun(runID int64, endTime time.Time, totalChecks int) error {
	args := m.Called(runID, endTime, totalChecks)
	return args.Error(0)
}

// RecordCheckResult implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordCheckResult(runID int64, report *schema.AnalysisReport) error {
	args := m.Called(runID, report)
	return args.Error(0)
}

// GetAllRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllRuns() ([]schema.ScanRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ScanRunRecord)
	return runs, args.Error(1)
}

// GetAllCheckResults implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllCheckResults() ([]schema.CheckResultRecord, error) {
	args := m.Called()
	results, _ := args.Get(0).([]schema.CheckResultRecord)
	return results, args.Error(1)
}

// GetRecentResults implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetRecentResults(check schema.CheckName, limit int) ([]schema.CheckResultRecord, error) {
	args := m.Called(check, limit)
	results, _ := args.Get(0).([]schema.CheckResultRecord)
	return results, args.Error(1)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
