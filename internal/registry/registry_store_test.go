package registry

import (
	"testing"
	"time"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *StoreImpl {
	t.Helper()
	store, err := NewRegistryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*StoreImpl)
}

func TestRegistryStore_NoneBackend(t *testing.T) {
	store, err := NewRegistryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), "risk.json", map[string]any{"workers": 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	assert.NoError(t, store.RecordModel(1, schema.ModelRecord{ModelName: "risk"}))
	assert.NoError(t, store.EndRun(1, time.Now(), 1, 0))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	assert.NoError(t, store.Close())
}

func TestRegistryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRegistryStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported registry backend")
}

func TestRegistryStore_SQLite(t *testing.T) {
	store := newMemoryStore(t)

	startTime := time.Now().Add(-2 * time.Second)
	runID, err := store.BeginRun(startTime, "risk.json", map[string]any{"workers": 4, "fail_fast": false})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	errMsg := `model "risk_b": unresolved parameter $cap in "<= $cap"`
	records := []schema.ModelRecord{
		{
			RunID:               runID,
			ModelName:           "risk_a",
			GridParams:          `{"cap":"a"}`,
			Digest:              "abc123",
			DocumentBytes:       2048,
			CharacteristicCount: 2,
			Status:              schema.ModelOK,
			CompiledAt:          time.Now(),
		},
		{
			RunID:        runID,
			ModelName:    "risk_b",
			GridParams:   `{"cap":"b"}`,
			Status:       schema.ModelFailed,
			ErrorMessage: &errMsg,
			CompiledAt:   time.Now(),
		},
	}
	for _, rec := range records {
		require.NoError(t, store.RecordModel(runID, rec))
	}
	require.NoError(t, store.EndRun(runID, time.Now(), 2, 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "risk.json", run.InputName)
	assert.Equal(t, int32(2), run.TotalModels)
	assert.Equal(t, int32(1), run.FailedModels)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.GreaterOrEqual(t, *run.RunDurationMs, int32(2000))
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"workers": 4, "fail_fast": false}`, *run.ConfigParams)
	assert.True(t, run.StartTime.Equal(startTime))

	models, err := store.GetAllModels()
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "risk_a", models[0].ModelName)
	assert.Equal(t, schema.ModelOK, models[0].Status)
	assert.Equal(t, int32(2048), models[0].DocumentBytes)
	assert.Nil(t, models[0].ErrorMessage)
	assert.Equal(t, schema.ModelFailed, models[1].Status)
	require.NotNil(t, models[1].ErrorMessage)
	assert.Equal(t, errMsg, *models[1].ErrorMessage)
}

func TestRegistryStore_DuplicateModel(t *testing.T) {
	store := newMemoryStore(t)

	runID, err := store.BeginRun(time.Now(), "stdin", nil)
	require.NoError(t, err)

	rec := schema.ModelRecord{ModelName: "risk", GridParams: "{}", Status: schema.ModelOK, CompiledAt: time.Now()}
	require.NoError(t, store.RecordModel(runID, rec))
	assert.Error(t, store.RecordModel(runID, rec))
}

func TestRegistryStore_EndUnknownRun(t *testing.T) {
	store := newMemoryStore(t)
	err := store.EndRun(42, time.Now(), 1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 42")
}

func TestRegistryStore_Status(t *testing.T) {
	store := newMemoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[compileRunsTable])

	var lastID int64
	for i := range 3 {
		runID, err := store.BeginRun(time.Now(), "risk.json", map[string]any{"run": i})
		require.NoError(t, err)
		require.NoError(t, store.RecordModel(runID, schema.ModelRecord{
			ModelName: "risk", GridParams: "{}", Status: schema.ModelOK, CompiledAt: time.Now(),
		}))
		require.NoError(t, store.EndRun(runID, time.Now(), 2, i%2))
		lastID = runID
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, lastID, status.LastRunID)
	assert.Equal(t, 6, status.TotalModels)
	assert.Equal(t, 1, status.FailedModels)
	assert.False(t, status.OldestRunTime.After(status.LastRunTime))
	assert.Equal(t, int64(3), status.TableSizes[compileRunsTable])
	assert.Equal(t, int64(3), status.TableSizes[modelsTable])
}

func TestRebind(t *testing.T) {
	pg := &StoreImpl{backend: schema.PostgreSQLBackend}
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", pg.rebind("UPDATE t SET a = ?, b = ? WHERE id = ?"))

	lite := &StoreImpl{backend: schema.SQLiteBackend}
	assert.Equal(t, "SELECT ? FROM t", lite.rebind("SELECT ? FROM t"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`scorecard_models`", quoteTableName(modelsTable, schema.MySQLBackend))
	assert.Equal(t, `"scorecard_models"`, quoteTableName(modelsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"scorecard_models"`, quoteTableName(modelsTable, schema.SQLiteBackend))
}
