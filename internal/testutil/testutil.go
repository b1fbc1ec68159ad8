// Package testutil provides utilities for integration testing.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// DefaultTestConnString is the default connection string for tests.
	// Override with SALESMART_TEST_CONN environment variable.
	DefaultTestConnString = "postgres://postgres@localhost:5432/postgres"

	// TestDBPrefix is the prefix for test databases.
	TestDBPrefix = "salesmart_test_"
)

// PostgresAvailable checks if PostgreSQL is available for testing.
// Returns the connection string if available, empty string otherwise.
func PostgresAvailable() string {
	connStr := os.Getenv("SALESMART_TEST_CONN")
	if connStr == "" {
		connStr = DefaultTestConnString
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return ""
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return ""
	}

	return connStr
}

// SkipIfNoPostgres skips the test if PostgreSQL is not available.
func SkipIfNoPostgres(t *testing.T) string {
	connStr := PostgresAvailable()
	if connStr == "" {
		t.Skip("PostgreSQL not available, skipping integration test")
	}
	return connStr
}

// CreateTestDB creates a throwaway test database and returns its
// connection string plus the database name for cleanup.
func CreateTestDB(t *testing.T, baseConnStr string) (string, string) {
	t.Helper()

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random database name: %v", err)
	}
	dbName := TestDBPrefix + hex.EncodeToString(randomBytes)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, baseConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)); err != nil {
		t.Fatalf("Failed to drop existing test database: %v", err)
	}
	if _, err := pool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Build the connection string manually since ConnString() doesn't
	// reflect changes made to ConnConfig.Database.
	config, err := pgxpool.ParseConfig(baseConnStr)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}

	host := config.ConnConfig.Host
	port := config.ConnConfig.Port
	user := config.ConnConfig.User
	password := config.ConnConfig.Password

	var testConnStr string
	if password != "" {
		testConnStr = fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			user, password, host, port, dbName)
	} else {
		testConnStr = fmt.Sprintf("postgres://%s@%s:%d/%s",
			user, host, port, dbName)
	}

	return testConnStr, dbName
}

// DropTestDB drops the test database.
func DropTestDB(t *testing.T, baseConnStr, dbName string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, baseConnStr)
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test database: %v", err)
		return
	}
	defer pool.Close()

	// Terminate connections to the database
	_, _ = pool.Exec(ctx, fmt.Sprintf(`
        SELECT pg_terminate_backend(pid)
        FROM pg_stat_activity
        WHERE datname = '%s' AND pid <> pg_backend_pid()
    `, dbName))

	if _, err := pool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)); err != nil {
		t.Logf("Warning: Failed to drop test database: %v", err)
	}
}

// ConnectTestDB connects to a test database.
func ConnectTestDB(t *testing.T, connStr string) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return pool
}
