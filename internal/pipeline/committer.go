package pipeline

import (
	"context"
	"log/slog"
	"os"

	"scribe/internal/blobstore"
	"scribe/internal/logging"
	"scribe/internal/stats"
)

// Committer performs the two-phase archival for a batch of successfully
// transcribed assets: copy everything first, then verify sizes and delete
// the sources. A crash between the phases leaves assets recoverable as
// orphans; a source blob is never deleted without a size-verified copy.
type Committer struct {
	store   blobstore.Store
	source  string
	archive string
	logger  *slog.Logger
}

func NewCommitter(store blobstore.Store, source, archive string, logger *slog.Logger) *Committer {
	return &Committer{
		store:   store,
		source:  source,
		archive: archive,
		logger:  logging.NewComponentLogger(logger, "committer"),
	}
}

// Commit archives the successful outcomes of one batch and returns how
// many assets were copied and how many sources were deleted. Staging
// files for every attempted item are removed before returning, whatever
// the outcome. Item failures are recorded and never abort remaining
// items.
func (c *Committer) Commit(ctx context.Context, outcomes []Outcome, run *stats.Run) (moved, deleted int) {
	var copied []Outcome

	// Phase 1: copy every staged file into the archive namespace.
	for _, outcome := range outcomes {
		if !outcome.Success {
			continue
		}
		data, err := os.ReadFile(outcome.LocalPath)
		if err != nil {
			run.RecordError("read staged copy of %s: %v", outcome.Asset.Name, err)
			c.logger.Error("staged file unreadable",
				logging.String(logging.FieldAsset, outcome.Asset.Name),
				logging.Error(err))
			continue
		}
		if err := c.store.Upload(ctx, c.archive, outcome.Asset.Name, data); err != nil {
			run.RecordError("archive copy of %s: %v", outcome.Asset.Name, err)
			c.logger.Error("archive copy failed",
				logging.String(logging.FieldAsset, outcome.Asset.Name),
				logging.Error(err))
			continue
		}
		run.RecordMoved()
		copied = append(copied, outcome)
	}

	moved = len(copied)

	// Phase 2: verify sizes and delete sources for everything copied.
	for _, outcome := range copied {
		if c.verifyAndDelete(ctx, outcome.Asset.Name, run) {
			deleted++
		}
	}

	for _, outcome := range outcomes {
		if outcome.LocalPath != "" {
			os.Remove(outcome.LocalPath)
		}
	}
	return moved, deleted
}

func (c *Committer) verifyAndDelete(ctx context.Context, name string, run *stats.Run) bool {
	srcSize, err := c.store.Size(ctx, c.source, name)
	if err != nil {
		run.RecordError("probe source size of %s: %v", name, err)
		return false
	}
	dstSize, err := c.store.Size(ctx, c.archive, name)
	if err != nil {
		run.RecordError("probe archive size of %s: %v", name, err)
		return false
	}
	if srcSize != dstSize {
		run.RecordError("size mismatch for %s: source %d bytes, archive %d bytes", name, srcSize, dstSize)
		c.logger.Error("archive copy size mismatch, source kept",
			logging.String(logging.FieldAsset, name),
			logging.Int64("source_bytes", srcSize),
			logging.Int64("archive_bytes", dstSize))
		return false
	}
	if err := c.store.Delete(ctx, c.source, name); err != nil {
		run.RecordError("delete source %s: %v", name, err)
		return false
	}
	run.RecordDeleted()
	c.logger.Info("asset archived",
		logging.String(logging.FieldAsset, name),
		logging.Int64("bytes", srcSize))
	return true
}
