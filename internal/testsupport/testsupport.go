// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"testing"

	"scribe/internal/config"
)

// NewConfig returns a validated configuration rooted in per-test temp
// directories, with a connection string stub and email disabled.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Paths.StagingDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Storage.ConnectionString = "UseDevelopmentStorage=true"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
