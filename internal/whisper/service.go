package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service runs the faster-whisper CLI against staged audio files. One call
// per asset, synchronous, no streaming.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config) *Service {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if cfg.ComputeType == "" {
		cfg.ComputeType = DefaultComputeType
	}
	if cfg.BeamSize <= 0 {
		cfg.BeamSize = DefaultBeamSize
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Process transcribes and translates one local audio file. The outcome is
// carried in the Result status tag; a non-nil error is returned only when
// the surrounding run should stop (context cancellation).
func (s *Service) Process(ctx context.Context, audioPath string) (Result, error) {
	start := time.Now()

	result := Result{
		ID:               uuid.NewString(),
		Filename:         filepath.Base(audioPath),
		DetectedLanguage: "unknown",
		LanguageCode:     "unknown",
		ModelName:        s.cfg.Model,
		Timestamp:        start.UTC().Format(time.RFC3339),
		Status:           StatusFailed,
	}

	outputDir := filepath.Dir(audioPath)
	if err := s.run(ctx, UVXCommand, s.buildArgs(audioPath, outputDir)...); err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.Error = err.Error()
		return result, nil
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	payload, err := loadPayload(filepath.Join(outputDir, baseName+".json"))
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}

	result.LanguageCode = payload.Language
	result.DetectedLanguage = LanguageName(payload.Language)
	result.LanguageConfidence = payload.LanguageProbability
	result.AudioDuration = payload.duration()

	parts := make([]string, 0, len(payload.Segments))
	for _, segment := range payload.Segments {
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}
	translation := DeduplicateText(strings.Join(parts, " "))
	if strings.TrimSpace(translation) == "" {
		result.Error = "translation is empty"
		return result, nil
	}

	result.Translation = translation
	result.WordCount = len(strings.Fields(translation))
	result.TranslationTime = time.Since(start).Seconds()
	result.Status = StatusSuccess
	return result, nil
}

// buildArgs constructs the uvx command arguments for whisper-ctranslate2.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := []string{
		CLIName,
		source,
		"--task", "translate",
		"--model", s.cfg.Model,
		"--device", s.cfg.Device,
		"--compute_type", s.cfg.ComputeType,
		"--beam_size", strconv.Itoa(s.cfg.BeamSize),
		"--vad_filter", "True",
		"--vad_min_silence_duration_ms", VADMinSilenceMS,
		"--output_dir", outputDir,
		"--output_format", "json",
		"--verbose", "False",
	}
	if s.cfg.ModelDir != "" {
		args = append(args, "--model_directory", s.cfg.ModelDir, "--local_files_only", "True")
	}
	return args
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// segment is one transcribed span from the engine's JSON output.
type segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// payload is the JSON document the engine writes beside the audio file.
type payload struct {
	Language            string    `json:"language"`
	LanguageProbability float64   `json:"language_probability"`
	Duration            float64   `json:"duration"`
	Segments            []segment `json:"segments"`
}

func (p payload) duration() float64 {
	if p.Duration > 0 {
		return p.Duration
	}
	if n := len(p.Segments); n > 0 {
		return p.Segments[n-1].End
	}
	return 0
}

func loadPayload(jsonPath string) (payload, error) {
	var p payload
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return p, fmt.Errorf("read engine output: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse engine output: %w", err)
	}
	return p, nil
}
