//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestEngramWithMySQL exercises the snapshot store against a MySQL backend.
func TestEngramWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "engram",
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

	// The driver scans created_at into time.Time, so parseTime is required.
	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/engram?parseTime=true", host, port.Port())

	runStoreLifecycle(t, "mysql", connStr)
}

// TestEngramWithPostgres exercises the snapshot store against a PostgreSQL backend.
func TestEngramWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
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
	// The ready line appears once during initdb and once for the real server.
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	runStoreLifecycle(t, "postgresql", connStr)
}

// runStoreLifecycle drives migrate, a stored analysis, list, status and
// prune through the CLI against the given backend.
func runStoreLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()

	// Set environment variables
	_ = os.Setenv("ENGRAM_STORE_BACKEND", backend)
	_ = os.Setenv("ENGRAM_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("ENGRAM_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("ENGRAM_STORE_DB_CONNECT") }()

	repoDir := writeSampleRepo(t)

	// Run engram snapshots migrate on the fresh database
	_, err := runEngramCommand(t, repoDir, "snapshots", "migrate")
	require.NoError(t, err)

	// Run engram analyze with snapshot storage enabled
	out, err := runEngramCommand(t, repoDir, "analyze", ".", "--store", "yes", "--skip-model", "--provider", "none")
	require.NoError(t, err)
	require.Contains(t, out, "Stored snapshot")

	// Run engram snapshots status
	out, err = runEngramCommand(t, repoDir, "snapshots", "status")
	require.NoError(t, err)
	require.Contains(t, out, "Total Snapshots: 1")

	// Run engram snapshots list
	out, err = runEngramCommand(t, repoDir, "snapshots", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Showing 1 snapshots")

	// Run engram snapshots prune with a cutoff that spares the fresh row
	out, err = runEngramCommand(t, repoDir, "snapshots", "prune", "--older-than", "1 day")
	require.NoError(t, err)
	require.Contains(t, out, "Pruned 0 snapshots")
}
