package pipeline

import (
	"context"
	"log/slog"

	"scribe/internal/assets"
	"scribe/internal/blobstore"
	"scribe/internal/logging"
	"scribe/internal/stats"
)

// Reconciler replays the archival step for orphans: assets whose
// artifact already exists but which were never moved out of the source
// namespace. Orphans are evidence of a crash between artifact
// publication and archival; no transcription work is repeated for them.
type Reconciler struct {
	store   blobstore.Store
	source  string
	archive string
	logger  *slog.Logger
}

func NewReconciler(store blobstore.Store, source, archive string, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:   store,
		source:  source,
		archive: archive,
		logger:  logging.NewComponentLogger(logger, "reconciler"),
	}
}

// Reconcile archives each orphan with the same copy-verify-delete
// discipline as a normal commit. Returns how many orphans were fully
// archived. Item failures are recorded and never abort remaining items.
func (r *Reconciler) Reconcile(ctx context.Context, orphans []assets.Asset, run *stats.Run) (int, error) {
	if len(orphans) == 0 {
		return 0, nil
	}
	r.logger.Info("reconciling orphans", logging.Int("count", len(orphans)))

	archived := 0
	for _, asset := range orphans {
		if err := ctx.Err(); err != nil {
			return archived, err
		}
		if r.replay(ctx, asset, run) {
			archived++
		}
	}
	return archived, nil
}

func (r *Reconciler) replay(ctx context.Context, asset assets.Asset, run *stats.Run) bool {
	data, err := r.store.Download(ctx, r.source, asset.Name)
	if err != nil {
		run.RecordError("download orphan %s: %v", asset.Name, err)
		return false
	}
	if err := r.store.Upload(ctx, r.archive, asset.Name, data); err != nil {
		run.RecordError("archive orphan %s: %v", asset.Name, err)
		return false
	}
	run.RecordMoved()

	srcSize, err := r.store.Size(ctx, r.source, asset.Name)
	if err != nil {
		run.RecordError("probe orphan source size of %s: %v", asset.Name, err)
		return false
	}
	dstSize, err := r.store.Size(ctx, r.archive, asset.Name)
	if err != nil {
		run.RecordError("probe orphan archive size of %s: %v", asset.Name, err)
		return false
	}
	if srcSize != dstSize {
		run.RecordError("size mismatch for orphan %s: source %d bytes, archive %d bytes", asset.Name, srcSize, dstSize)
		return false
	}
	if err := r.store.Delete(ctx, r.source, asset.Name); err != nil {
		run.RecordError("delete orphan source %s: %v", asset.Name, err)
		return false
	}
	run.RecordDeleted()
	r.logger.Info("orphan archived", logging.String(logging.FieldAsset, asset.Name))
	return true
}
