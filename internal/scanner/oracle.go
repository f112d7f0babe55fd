package scanner

import (
	"context"
	"log/slog"

	"scribe/internal/blobstore"
	"scribe/internal/logging"
)

// Oracle answers whether the derived artifact for an asset already exists
// in the transcriptions container. Probe failures other than a clean
// not-found are logged and reported as absent so the asset is retried on
// a later cycle rather than silently skipped forever.
type Oracle struct {
	store     blobstore.Store
	container string
	logger    *slog.Logger
}

func NewOracle(store blobstore.Store, container string, logger *slog.Logger) *Oracle {
	return &Oracle{
		store:     store,
		container: container,
		logger:    logging.NewComponentLogger(logger, "scanner"),
	}
}

// Exists probes the artifact blob by name.
func (o *Oracle) Exists(ctx context.Context, artifactName string) bool {
	if _, err := o.store.Size(ctx, o.container, artifactName); err != nil {
		if !blobstore.IsNotFound(err) {
			o.logger.Warn("artifact probe failed, treating as absent",
				logging.String(logging.FieldAsset, artifactName),
				logging.Error(err))
		}
		return false
	}
	return true
}
