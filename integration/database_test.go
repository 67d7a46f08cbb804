//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestScorecardWithMySQL tests the scorecard CLI with a MySQL registry.
func TestScorecardWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "scorecard",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/scorecard?parseTime=true", host, port.Port())
	runRegistryFlow(t, "mysql", connStr)
}

// TestScorecardWithPostgres tests the scorecard CLI with a PostgreSQL registry.
func TestScorecardWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runRegistryFlow(t, "postgresql", connStr)
}

// runRegistryFlow drives the registry commands against a live database
// configured through the environment.
func runRegistryFlow(t *testing.T, backend, connStr string) {
	t.Helper()
	t.Setenv("SCORECARD_REGISTRY_BACKEND", backend)
	t.Setenv("SCORECARD_REGISTRY_DB_CONNECT", connStr)

	// Start from an empty schema, then build it with migrations
	_, err := runScorecard(t, "registry", "clear")
	require.NoError(t, err)
	_, err = runScorecard(t, "registry", "migrate")
	require.NoError(t, err)

	_, err = runScorecard(t, "compile", "testdata/wage.json", "--output-dir", t.TempDir())
	require.NoError(t, err)

	out, err := runScorecard(t, "registry", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 1")
	assert.Contains(t, out, "Total Models Compiled: 4 (0 failed)")

	_, err = runScorecard(t, "registry", "clear")
	require.NoError(t, err)
}
