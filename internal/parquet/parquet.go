// Package parquet provides data structures and functions for exporting scorecard
// summaries and registry data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/scorecard/schema"
	"github.com/parquet-go/parquet-go"
)

// CompileRun represents a single compile run with metadata.
// This struct maps to the scorecard_compile_runs database table.
type CompileRun struct {
	// RunID is the unique identifier for this compile run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalModels is the number of grid points compiled in this run
	TotalModels int32 `parquet:"total_models,snappy"`

	// FailedModels is the number of grid points that failed
	FailedModels int32 `parquet:"failed_models,snappy"`

	// InputName is the description file name, or stdin
	InputName string `parquet:"input_name,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CompiledModel represents the outcome of one grid point in a compile run.
// This struct maps to the scorecard_models database table.
type CompiledModel struct {
	RunID               int64     `parquet:"run_id,snappy"`
	ModelName           string    `parquet:"model_name,snappy"`
	GridParams          string    `parquet:"grid_params,snappy"`
	Digest              string    `parquet:"digest,snappy"`
	DocumentBytes       int32     `parquet:"document_bytes,snappy"`
	CharacteristicCount int32     `parquet:"characteristic_count,snappy"`
	Status              string    `parquet:"status,snappy"`
	ErrorMessage        *string   `parquet:"error_message,optional,snappy"`
	CompiledAt          time.Time `parquet:"compiled_at,snappy"`
}

// SummaryRow is one attribute row of the tabular summary.
type SummaryRow struct {
	Model          string `parquet:"model,snappy"`
	Characteristic string `parquet:"characteristic,snappy"`
	Rank           int32  `parquet:"rank,snappy"`
	Predicate      string `parquet:"predicate,snappy"`
	PartialScore   string `parquet:"partial_score,snappy"`
	ReasonCode     string `parquet:"reason_code,snappy"`
	BaselineScore  string `parquet:"baseline_score,snappy"`
}

// WriteCompileRunsParquet writes a slice of CompileRun structs to a Parquet file.
func WriteCompileRunsParquet(data []CompileRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteCompiledModelsParquet writes a slice of CompiledModel structs to a Parquet file.
func WriteCompiledModelsParquet(data []CompiledModel, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteSummaryRows writes summary rows to w.
func WriteSummaryRows(w io.Writer, data []SummaryRow) error {
	return writeRows(w, data)
}

// writeFile creates outputPath and writes data to it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return writeRows(file, data)
}

// writeRows writes data with a schema inferred from the struct tags of T.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertCompileRunRecords converts schema.CompileRunRecord to CompileRun for Parquet export.
func ConvertCompileRunRecords(records []schema.CompileRunRecord) []CompileRun {
	result := make([]CompileRun, len(records))
	for i, record := range records {
		result[i] = CompileRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalModels:   record.TotalModels,
			FailedModels:  record.FailedModels,
			InputName:     record.InputName,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertModelRecords converts schema.ModelRecord to CompiledModel for Parquet export.
func ConvertModelRecords(records []schema.ModelRecord) []CompiledModel {
	result := make([]CompiledModel, len(records))
	for i, record := range records {
		result[i] = CompiledModel{
			RunID:               record.RunID,
			ModelName:           record.ModelName,
			GridParams:          record.GridParams,
			Digest:              record.Digest,
			DocumentBytes:       record.DocumentBytes,
			CharacteristicCount: record.CharacteristicCount,
			Status:              string(record.Status),
			ErrorMessage:        record.ErrorMessage,
			CompiledAt:          record.CompiledAt,
		}
	}
	return result
}

// ConvertSummaryRows converts schema.SummaryRow to SummaryRow for Parquet output.
func ConvertSummaryRows(rows []schema.SummaryRow) []SummaryRow {
	result := make([]SummaryRow, len(rows))
	for i, row := range rows {
		result[i] = SummaryRow{
			Model:          row.Model,
			Characteristic: row.Characteristic,
			Rank:           int32(row.Rank),
			Predicate:      row.Predicate,
			PartialScore:   row.PartialScore,
			ReasonCode:     row.ReasonCode,
			BaselineScore:  row.BaselineScore,
		}
	}
	return result
}
