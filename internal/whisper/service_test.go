package whisper_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/whisper"
)

func writeEngineOutput(t *testing.T, dir, base, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, base+".json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write engine output: %v", err)
	}
}

func TestProcessSuccess(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "meeting.wav")
	if err := os.WriteFile(audioPath, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	var gotName string
	var gotArgs []string
	svc := whisper.NewService(whisper.Config{Model: "test-model"})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		writeEngineOutput(t, dir, "meeting", `{
			"language": "hi",
			"language_probability": 0.97,
			"duration": 12.5,
			"segments": [
				{"text": " Hello everyone. ", "start": 0, "end": 6},
				{"text": "Hello everyone.", "start": 6, "end": 9},
				{"text": "Let us begin.", "start": 9, "end": 12.5}
			]
		}`)
		return nil
	})

	result, err := svc.Process(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got %+v", result)
	}
	if gotName != whisper.UVXCommand {
		t.Fatalf("unexpected command: %q", gotName)
	}
	if gotArgs[0] != whisper.CLIName || gotArgs[1] != audioPath {
		t.Fatalf("unexpected args: %v", gotArgs[:2])
	}
	if result.LanguageCode != "hi" || result.DetectedLanguage != "Hindi" {
		t.Fatalf("unexpected language: %q %q", result.LanguageCode, result.DetectedLanguage)
	}
	if result.AudioDuration != 12.5 {
		t.Fatalf("unexpected duration: %v", result.AudioDuration)
	}
	if strings.Contains(result.Translation, "Hello everyone. Hello everyone") {
		t.Fatalf("expected deduplicated translation, got %q", result.Translation)
	}
	if result.WordCount == 0 {
		t.Fatal("expected word count")
	}
	if result.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestProcessEngineFailureYieldsFailedResult(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "meeting.wav")

	svc := whisper.NewService(whisper.Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return os.ErrPermission
	})

	result, err := svc.Process(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Success() {
		t.Fatal("expected failed result")
	}
	if result.Error == "" {
		t.Fatal("expected error string")
	}
}

func TestProcessEmptyTranslationFails(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "silence.wav")

	svc := whisper.NewService(whisper.Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		writeEngineOutput(t, dir, "silence", `{"language": "en", "segments": []}`)
		return nil
	})

	result, err := svc.Process(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Success() {
		t.Fatal("expected failure for empty translation")
	}
	if result.Error != "translation is empty" {
		t.Fatalf("unexpected error: %q", result.Error)
	}
}

func TestProcessCanceledContextReturnsError(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "meeting.wav")

	ctx, cancel := context.WithCancel(context.Background())
	svc := whisper.NewService(whisper.Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		cancel()
		return ctx.Err()
	})

	if _, err := svc.Process(ctx, audioPath); err == nil {
		t.Fatal("expected context error")
	}
}

func TestDeduplicateText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Hello. Hello. World.", "Hello. World."},
		{"One. Two. One.", "One. Two. One."},
		{"No trailing dot", "No trailing dot"},
	}
	for _, tt := range tests {
		if got := whisper.DeduplicateText(tt.in); got != tt.want {
			t.Errorf("DeduplicateText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLanguageName(t *testing.T) {
	if got := whisper.LanguageName("ta"); got != "Tamil" {
		t.Fatalf("unexpected name for ta: %q", got)
	}
	if got := whisper.LanguageName(""); got != "unknown" {
		t.Fatalf("unexpected name for empty code: %q", got)
	}
	if got := whisper.LanguageName("zz-bogus!"); got != "ZZ-BOGUS!" {
		t.Fatalf("unexpected fallback: %q", got)
	}
}
