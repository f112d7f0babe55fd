package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
)

const testConnectionString = "DefaultEndpointsProtocol=https;AccountName=test;AccountKey=key"

func TestLoadDefaultsUseEnvConnectionStringAndExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AZURE_STORAGE_CONNECTION_STRING", testConnectionString)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "scribe")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Storage.ConnectionString != testConnectionString {
		t.Fatalf("expected connection string from env, got %q", cfg.Storage.ConnectionString)
	}
	if cfg.Storage.RecordingsContainer != "recordings" {
		t.Fatalf("unexpected recordings container: %q", cfg.Storage.RecordingsContainer)
	}
	if cfg.Processing.BatchSize != 10 {
		t.Fatalf("unexpected batch size: %d", cfg.Processing.BatchSize)
	}
	if cfg.StaleLockWindow().Minutes() != 120 {
		t.Fatalf("unexpected staleness window: %s", cfg.StaleLockWindow())
	}
	if cfg.EmailEnabled() {
		t.Fatal("expected email disabled by default")
	}
	if cfg.RunStatePath() != filepath.Join(wantState, "run_state.json") {
		t.Fatalf("unexpected run state path: %q", cfg.RunStatePath())
	}
}

func TestLoadReadsTOMLAndNormalizes(t *testing.T) {
	t.Setenv("AZURE_STORAGE_CONNECTION_STRING", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[storage]
connection_string = "` + testConnectionString + `"
recordings_container = " recordings "
transcriptions_container = "transcriptions"
processed_container = "done"

[processing]
batch_size = 4

[email]
recipients = ["ops@example.com", "  "]
username = "reports@example.com"
password = "secret"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Storage.RecordingsContainer != "recordings" {
		t.Fatalf("expected trimmed container, got %q", cfg.Storage.RecordingsContainer)
	}
	if cfg.Processing.BatchSize != 4 {
		t.Fatalf("unexpected batch size: %d", cfg.Processing.BatchSize)
	}
	if !cfg.EmailEnabled() {
		t.Fatal("expected email enabled")
	}
	if len(cfg.Email.Recipients) != 1 {
		t.Fatalf("expected blank recipients dropped, got %v", cfg.Email.Recipients)
	}
	if cfg.Email.From != "reports@example.com" {
		t.Fatalf("expected from to default to username, got %q", cfg.Email.From)
	}
}

func TestLoadRejectsMissingConnectionString(t *testing.T) {
	t.Setenv("AZURE_STORAGE_CONNECTION_STRING", "")
	t.Setenv("HOME", t.TempDir())

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected error for missing connection string")
	}
	if !strings.Contains(err.Error(), "connection_string") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsOutOfRangeBatchSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[storage]
connection_string = "` + testConnectionString + `"

[processing]
batch_size = 0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error for batch_size = 0")
	}
	if !strings.Contains(err.Error(), "batch") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsSameSourceAndArchiveContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[storage]
connection_string = "` + testConnectionString + `"
processed_container = "recordings"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for identical source and archive containers")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[storage]") {
		t.Fatal("sample config missing storage section")
	}
}
