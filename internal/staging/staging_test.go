package staging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scribe/internal/logging"
	"scribe/internal/staging"
)

func TestNewRunDirUnique(t *testing.T) {
	root := t.TempDir()
	a, err := staging.NewRunDir(root)
	if err != nil {
		t.Fatalf("NewRunDir: %v", err)
	}
	b, err := staging.NewRunDir(root)
	if err != nil {
		t.Fatalf("NewRunDir: %v", err)
	}
	if a == b {
		t.Fatal("run dirs must be unique")
	}
	for _, dir := range []string{a, b} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory at %s: %v", dir, err)
		}
		if !strings.HasPrefix(filepath.Base(dir), "run-") {
			t.Fatalf("unexpected dir name: %s", dir)
		}
	}
}

func TestCleanStale(t *testing.T) {
	root := t.TempDir()
	old := filepath.Join(root, "run-old")
	fresh := filepath.Join(root, "run-fresh")
	other := filepath.Join(root, "keep-me")
	for _, dir := range []string{old, fresh, other} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed := staging.CleanStale(logging.NewNop(), root, 24*time.Hour)
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatal("stale dir not removed")
	}
	for _, dir := range []string{fresh, other} {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("dir %s should survive: %v", dir, err)
		}
	}
}

func TestCleanStaleMissingRoot(t *testing.T) {
	if removed := staging.CleanStale(logging.NewNop(), filepath.Join(t.TempDir(), "absent"), time.Hour); removed != 0 {
		t.Fatalf("expected 0 removals, got %d", removed)
	}
}
