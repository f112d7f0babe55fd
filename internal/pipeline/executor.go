package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"scribe/internal/assets"
	"scribe/internal/blobstore"
	"scribe/internal/logging"
	"scribe/internal/whisper"
)

// Transcriber turns one local audio file into a transcription result.
// Implemented by whisper.Service in production.
type Transcriber interface {
	Process(ctx context.Context, audioPath string) (whisper.Result, error)
}

// Outcome captures the fate of one asset within a batch. LocalPath points
// at the staged audio file and is set only for successful items; the
// committer owns its cleanup.
type Outcome struct {
	Asset     assets.Asset
	Result    whisper.Result
	LocalPath string
	Success   bool
	Err       error
}

// Executor drives a single asset through download, transcription and
// artifact publication. Items never abort each other; every failure is
// carried in the Outcome.
type Executor struct {
	store       blobstore.Store
	source      string
	artifacts   string
	transcriber Transcriber
	stagingDir  string
	logger      *slog.Logger
}

func NewExecutor(store blobstore.Store, source, artifacts string, transcriber Transcriber, stagingDir string, logger *slog.Logger) *Executor {
	return &Executor{
		store:       store,
		source:      source,
		artifacts:   artifacts,
		transcriber: transcriber,
		stagingDir:  stagingDir,
		logger:      logging.NewComponentLogger(logger, "executor"),
	}
}

// Batches partitions items into contiguous windows of at most size
// elements, preserving order. The final window may be shorter.
func Batches(items []assets.Asset, size int) [][]assets.Asset {
	if size < 1 {
		size = 1
	}
	var out [][]assets.Asset
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}

// RunItem processes one asset end to end, short of archival. A non-nil
// error is returned only when the run should stop (context cancellation);
// all item-level failures are reported through the Outcome.
func (e *Executor) RunItem(ctx context.Context, asset assets.Asset) (Outcome, error) {
	outcome := Outcome{Asset: asset}

	data, err := e.store.Download(ctx, e.source, asset.Name)
	if err != nil {
		if ctx.Err() != nil {
			return outcome, ctx.Err()
		}
		outcome.Err = fmt.Errorf("download %s: %w", asset.Name, err)
		return outcome, nil
	}

	localPath := filepath.Join(e.stagingDir, asset.Base())
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		outcome.Err = fmt.Errorf("stage %s: %w", asset.Name, err)
		return outcome, nil
	}

	result, err := e.transcriber.Process(ctx, localPath)
	if err != nil {
		os.Remove(localPath)
		return outcome, err
	}
	outcome.Result = result
	if !result.Success() {
		os.Remove(localPath)
		outcome.Err = fmt.Errorf("transcribe %s: %s", asset.Name, result.Error)
		return outcome, nil
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		os.Remove(localPath)
		outcome.Err = fmt.Errorf("encode artifact for %s: %w", asset.Name, err)
		return outcome, nil
	}
	if err := e.store.Upload(ctx, e.artifacts, asset.ArtifactName(), payload); err != nil {
		os.Remove(localPath)
		if ctx.Err() != nil {
			return outcome, ctx.Err()
		}
		outcome.Err = fmt.Errorf("upload artifact for %s: %w", asset.Name, err)
		return outcome, nil
	}

	e.logger.Info("transcription published",
		logging.String(logging.FieldAsset, asset.Name),
		logging.String("language", result.DetectedLanguage),
		logging.Int("words", result.WordCount))

	outcome.LocalPath = localPath
	outcome.Success = true
	return outcome, nil
}
