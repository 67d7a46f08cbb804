package schema

import "time"

// CompileRunRecord represents a row from the scorecard_compile_runs table.
type CompileRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalModels   int32
	FailedModels  int32
	InputName     string
	ConfigParams  *string
}

// ModelRecord represents a row from the scorecard_models table.
type ModelRecord struct {
	RunID               int64
	ModelName           string
	GridParams          string // JSON object of parameter -> option
	Digest              string // sha256 hex of the document, empty on failure
	DocumentBytes       int32
	CharacteristicCount int32
	Status              ModelStatus
	ErrorMessage        *string
	CompiledAt          time.Time
}
