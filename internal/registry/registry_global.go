package registry

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetRegistryDBFilePath returns the path to the SQLite DB file for the registry.
func GetRegistryDBFilePath() string {
	return contract.GetRegistryDBFilePath()
}

// InitRegistry initializes the global manager with a store for the backend.
// An empty backend leaves the manager without a store, which disables tracking.
func InitRegistry(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		if backend == "" {
			return
		}
		store, err := NewRegistryStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize build registry: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.store = store
	})

	return initErr
}

// CloseRegistry should be called on application shutdown.
func CloseRegistry() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearRegistry clears the registry for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the registry tables.
// For NoneBackend, it does nothing.
func ClearRegistry(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		driverName, _ := driverFor(backend)
		// Drop models before the runs they belong to
		for _, table := range []string{modelsTable, compileRunsTable} {
			if err := clearSQLTable(driverName, connStr, quoteTableName(table, backend)); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported registry backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
