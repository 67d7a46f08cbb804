package registry

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRegistry_NoneBackend(t *testing.T) {
	err := MigrateRegistry(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateRegistry_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Run migration to latest version
	require.NoError(t, MigrateRegistry(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	assert.NoError(t, MigrateRegistry(schema.SQLiteBackend, dbPath, -1))

	// Step down to version 1 drops the models table
	require.NoError(t, MigrateRegistry(schema.SQLiteBackend, dbPath, 1))
	assert.Equal(t, []string{compileRunsTable}, registryTables(t, dbPath))

	// Rollback to version 0
	require.NoError(t, MigrateRegistry(schema.SQLiteBackend, dbPath, 0))
	assert.Empty(t, registryTables(t, dbPath))

	// Migrate back up to version 2
	require.NoError(t, MigrateRegistry(schema.SQLiteBackend, dbPath, 2))
	assert.Equal(t, []string{compileRunsTable, modelsTable}, registryTables(t, dbPath))
}

func TestMigrateRegistry_MatchesStoreSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrated.db")
	require.NoError(t, MigrateRegistry(schema.SQLiteBackend, dbPath, -1))

	// A store opened on a migrated database works without changes
	store, err := NewRegistryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Len(t, status.TableSizes, 2)
}

func registryTables(t *testing.T, dbPath string) []string {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name LIKE 'scorecard_%' ORDER BY name`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Err())
	return tables
}
