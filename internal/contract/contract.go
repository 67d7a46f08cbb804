// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/scorecard/schema"
)

// RegistryManager defines the interface for reaching the build registry.
// This allows the registry layer to be mocked for testing.
type RegistryManager interface {
	GetRegistryStore() RegistryStore
}

// RegistryStore defines the interface for tracking compile runs and their models.
type RegistryStore interface {
	// BeginRun creates a new compile run and returns its unique ID
	BeginRun(startTime time.Time, inputName string, configParams map[string]any) (int64, error)

	// EndRun updates the compile run with completion data
	EndRun(runID int64, endTime time.Time, totalModels, failedModels int) error

	// RecordModel stores the outcome of one grid point
	RecordModel(runID int64, record schema.ModelRecord) error

	// GetStatus returns status information about the registry
	GetStatus() (schema.RegistryStatus, error)

	// GetAllRuns returns every compile run, oldest first
	GetAllRuns() ([]schema.CompileRunRecord, error)

	// GetAllModels returns every recorded model, ordered by run and name
	GetAllModels() ([]schema.ModelRecord, error)

	// Close closes the underlying connection
	Close() error
}
