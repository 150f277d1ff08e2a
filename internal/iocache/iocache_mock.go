package iocache

import (
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"

	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetDeliverableStore implements the CacheManager interface.
func (m *MockCacheManager) GetDeliverableStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetSnapshotStore implements the CacheManager interface.
func (m *MockCacheManager) GetSnapshotStore() contract.SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SnapshotStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	return value, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, value []byte, version int, timestamp int64) error {
	args := m.Called(key, value, version, timestamp)
	return args.Error(0)
}

// Delete implements the CacheStore interface.
func (m *MockCacheStore) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// BeginSnapshot implements the SnapshotStore interface.
func (m *MockSnapshotStore) BeginSnapshot(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndSnapshot implements the SnapshotStore interface.
func (m *MockSnapshotStore) EndSnapshot(snapshotID int64, endTime time.Time, totalPods int, currentCycle schema.CycleKey) error {
	args := m.Called(snapshotID, endTime, totalPods, currentCycle)
	return args.Error(0)
}

// RecordCycleRows implements the SnapshotStore interface.
func (m *MockSnapshotStore) RecordCycleRows(snapshotID int64, rows []schema.CycleKpiRow, computedAt time.Time) error {
	args := m.Called(snapshotID, rows, computedAt)
	return args.Error(0)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.SnapshotStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.SnapshotStatus), args.Error(1)
}

// GetAllSnapshotRuns implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetAllSnapshotRuns() ([]schema.SnapshotRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.SnapshotRunRecord)
	return runs, args.Error(1)
}

// GetAllSnapshotRows implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetAllSnapshotRows() ([]schema.SnapshotRowRecord, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.SnapshotRowRecord)
	return rows, args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
