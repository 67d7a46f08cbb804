package registry

import (
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/mock"
)

// MockRegistryManager is a mock implementation of RegistryManager for testing.
type MockRegistryManager struct {
	mock.Mock
}

var _ contract.RegistryManager = &MockRegistryManager{} // Compile-time check

// GetRegistryStore implements the RegistryManager interface.
func (m *MockRegistryManager) GetRegistryStore() contract.RegistryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RegistryStore)
	return store
}

// MockRegistryStore is a mock implementation of RegistryStore for testing.
type MockRegistryStore struct {
	mock.Mock
}

var _ contract.RegistryStore = &MockRegistryStore{} // Compile-time check

// BeginRun implements the RegistryStore interface.
func (m *MockRegistryStore) BeginRun(startTime time.Time, inputName string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, inputName, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RegistryStore interface.
func (m *MockRegistryStore) EndRun(runID int64, endTime time.Time, totalModels, failedModels int) error {
	args := m.Called(runID, endTime, totalModels, failedModels)
	return args.Error(0)
}

// RecordModel implements the RegistryStore interface.
func (m *MockRegistryStore) RecordModel(runID int64, record schema.ModelRecord) error {
	args := m.Called(runID, record)
	return args.Error(0)
}

// GetStatus implements the RegistryStore interface.
func (m *MockRegistryStore) GetStatus() (schema.RegistryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RegistryStatus), args.Error(1)
}

// GetAllRuns implements the RegistryStore interface.
func (m *MockRegistryStore) GetAllRuns() ([]schema.CompileRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.CompileRunRecord)
	return runs, args.Error(1)
}

// GetAllModels implements the RegistryStore interface.
func (m *MockRegistryStore) GetAllModels() ([]schema.ModelRecord, error) {
	args := m.Called()
	models, _ := args.Get(0).([]schema.ModelRecord)
	return models, args.Error(1)
}

// Close implements the RegistryStore interface.
func (m *MockRegistryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
