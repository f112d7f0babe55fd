package scanner_test

import (
	"context"
	"testing"

	"scribe/internal/blobstore"
	"scribe/internal/logging"
	"scribe/internal/scanner"
)

func newScanner(store *blobstore.Memory) *scanner.NamespaceScanner {
	logger := logging.NewNop()
	oracle := scanner.NewOracle(store, "transcriptions", logger)
	return scanner.New(store, "recordings", oracle, logger)
}

func TestScanFreshNamespace(t *testing.T) {
	store := blobstore.NewMemory()
	store.Put("recordings", "a.wav", []byte("a"))
	store.Put("recordings", "b.mp3", []byte("b"))
	store.Put("recordings", "c.FLAC", []byte("c"))
	store.Put("recordings", "notes.txt", []byte("skip me"))

	result, err := newScanner(store).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Scanned != 3 {
		t.Fatalf("expected 3 eligible blobs, got %d", result.Scanned)
	}
	if len(result.Pending) != 3 || len(result.Orphans) != 0 {
		t.Fatalf("expected 3 pending / 0 orphans, got %d / %d", len(result.Pending), len(result.Orphans))
	}
}

func TestScanDetectsOrphans(t *testing.T) {
	store := blobstore.NewMemory()
	store.Put("recordings", "a.wav", []byte("a"))
	store.Put("recordings", "b.wav", []byte("b"))
	store.Put("transcriptions", "a_transcription.json", []byte("{}"))

	result, err := newScanner(store).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.Pending) != 1 || result.Pending[0].Name != "b.wav" {
		t.Fatalf("unexpected pending set: %v", result.Pending)
	}
	if len(result.Orphans) != 1 || result.Orphans[0].Name != "a.wav" {
		t.Fatalf("unexpected orphan set: %v", result.Orphans)
	}
}

func TestScanEmptyNamespace(t *testing.T) {
	result, err := newScanner(blobstore.NewMemory()).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Scanned != 0 || len(result.Pending) != 0 || len(result.Orphans) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestScanCanceledContext(t *testing.T) {
	store := blobstore.NewMemory()
	store.Put("recordings", "a.wav", []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newScanner(store).Scan(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
