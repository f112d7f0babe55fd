package assets_test

import (
	"testing"

	"scribe/internal/assets"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"meeting.wav", true},
		{"MEETING.WAV", true},
		{"call.Mp3", true},
		{"clip.m4a", true},
		{"song.flac", true},
		{"voice.ogg", true},
		{"notes.txt", false},
		{"archive.wav.bak", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		if got := assets.Eligible(tt.name); got != tt.want {
			t.Errorf("Eligible(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		asset string
		want  string
	}{
		{"a.wav", "a_transcription.json"},
		{"calls/2026/a.mp3", "calls/2026/a_transcription.json"},
		{"noise.session.ogg", "noise.session_transcription.json"},
	}
	for _, tt := range tests {
		got := assets.Asset{Name: tt.asset}.ArtifactName()
		if got != tt.want {
			t.Errorf("ArtifactName(%q) = %q, want %q", tt.asset, got, tt.want)
		}
	}
}

func TestBaseStripsDirectories(t *testing.T) {
	a := assets.Asset{Name: "calls/2026/a.wav"}
	if a.Base() != "a.wav" {
		t.Fatalf("unexpected base: %q", a.Base())
	}
}
