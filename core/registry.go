package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// beginRun starts registry tracking for a compile run when a registry is configured.
// The returned context carries the run ID for recordResults.
func beginRun(ctx context.Context, cfg *contract.Config, mgr contract.RegistryManager, inputName string) context.Context {
	store := registryStore(mgr)
	if store == nil {
		return ctx
	}
	runID, err := store.BeginRun(time.Now(), inputName, cfg.ConfigParams())
	if err != nil {
		contract.LogWarn("Registry tracking initialization failed", err)
		return ctx
	}
	if runID > 0 {
		ctx = withRunID(ctx, runID)
	}
	return ctx
}

// recordResults stores one row per grid point and closes the run.
// Tracking failures are reported and never fail the compilation.
func recordResults(ctx context.Context, mgr contract.RegistryManager, results []schema.ModelResult) {
	runID, ok := getRunID(ctx)
	store := registryStore(mgr)
	if !ok || runID <= 0 || store == nil {
		return
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
		if err := store.RecordModel(runID, modelRecord(runID, r)); err != nil {
			logTrackingError("RecordModel", r.Name, err)
		}
	}
	if err := store.EndRun(runID, time.Now(), len(results), failed); err != nil {
		contract.LogWarn("Failed to finalize registry tracking", err)
	}
}

// modelRecord converts a compile result into its registry row.
func modelRecord(runID int64, r schema.ModelResult) schema.ModelRecord {
	rec := schema.ModelRecord{
		RunID:      runID,
		ModelName:  r.Name,
		GridParams: gridParamsJSON(r.Point),
		Status:     schema.ModelOK,
		CompiledAt: time.Now(),
	}
	if r.Failed() {
		msg := r.Err.Error()
		rec.Status = schema.ModelFailed
		rec.ErrorMessage = &msg
		return rec
	}
	sum := sha256.Sum256(r.Document)
	rec.Digest = hex.EncodeToString(sum[:])
	rec.DocumentBytes = int32(len(r.Document))
	if r.Model != nil {
		rec.CharacteristicCount = int32(len(r.Model.Characteristics))
	}
	return rec
}

// gridParamsJSON renders the chosen option of each parameter as a JSON object.
func gridParamsJSON(point schema.GridPoint) string {
	options := make(map[string]string, len(point.Choices))
	for _, c := range point.Choices {
		options[c.Param] = c.Option
	}
	data, err := json.Marshal(options)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func registryStore(mgr contract.RegistryManager) contract.RegistryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetRegistryStore()
}

// logTrackingError logs registry errors to stderr without disrupting compilation.
func logTrackingError(operation, model string, err error) {
	contract.LogWarn(fmt.Sprintf("Registry tracking failed for %s on %s", operation, model), err)
}
