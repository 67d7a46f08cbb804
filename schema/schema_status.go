package schema

import "time"

// RegistryStatus represents the status of the build registry.
type RegistryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalModels   int              `json:"total_models"`
	FailedModels  int              `json:"failed_models"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
