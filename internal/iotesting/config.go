// Package iotesting provides shared utilities for integration tests.
package iotesting

import (
	"os"
	"testing"

	"github.com/gnames/macrofitas/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "macrofitas_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// Database settings can be changed with MACROFITAS_TEST_DB_HOST,
// MACROFITAS_TEST_DB_USER and MACROFITAS_TEST_DB_PASSWORD, the database
// name is always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg.Journal.Database
//	}
func GetTestConfig() *config.Config {
	var opts []config.Option
	if h := os.Getenv("MACROFITAS_TEST_DB_HOST"); h != "" {
		opts = append(opts, config.OptDatabaseHost(h))
	}
	if u := os.Getenv("MACROFITAS_TEST_DB_USER"); u != "" {
		opts = append(opts, config.OptDatabaseUser(u))
	}
	if p := os.Getenv("MACROFITAS_TEST_DB_PASSWORD"); p != "" {
		opts = append(opts, config.OptDatabasePassword(p))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))

	cfg := config.New()
	cfg.Update(opts)
	return cfg
}

// TempHome creates a temporary home directory for a test and returns a
// config that points to it. Config, cache, log and journal paths are
// derived from it, so tests never touch the real user directories.
func TempHome(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()

	cfg := config.New()
	opts = append(opts, config.OptHomeDir(t.TempDir()))
	cfg.Update(opts)
	return cfg
}
