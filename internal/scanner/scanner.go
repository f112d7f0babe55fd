package scanner

import (
	"context"
	"fmt"
	"log/slog"

	"scribe/internal/assets"
	"scribe/internal/blobstore"
	"scribe/internal/logging"
)

// progressEvery controls how often the scan reports progress while
// walking a large namespace.
const progressEvery = 100

// Result partitions a namespace scan. Pending assets have no artifact
// yet and need the full pipeline; orphans already have an artifact and
// only need their archival replayed.
type Result struct {
	Pending []assets.Asset
	Orphans []assets.Asset
	Scanned int
}

// NamespaceScanner derives the work set for a run by listing the source
// container and probing the artifact for every eligible audio blob. No
// other state is consulted.
type NamespaceScanner struct {
	store     blobstore.Store
	container string
	oracle    *Oracle
	logger    *slog.Logger
}

func New(store blobstore.Store, container string, oracle *Oracle, logger *slog.Logger) *NamespaceScanner {
	return &NamespaceScanner{
		store:     store,
		container: container,
		oracle:    oracle,
		logger:    logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan lists the source container and classifies every eligible blob.
// A listing failure aborts the run; without a complete listing the work
// set cannot be trusted.
func (s *NamespaceScanner) Scan(ctx context.Context) (Result, error) {
	names, err := s.store.List(ctx, s.container)
	if err != nil {
		return Result{}, fmt.Errorf("list container %q: %w", s.container, err)
	}

	var result Result
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if !assets.Eligible(name) {
			continue
		}
		result.Scanned++
		if result.Scanned%progressEvery == 0 {
			s.logger.Info("scan in progress",
				logging.Int("checked", result.Scanned),
				logging.Int("pending", len(result.Pending)))
		}

		asset := assets.Asset{Name: name}
		if s.oracle.Exists(ctx, asset.ArtifactName()) {
			result.Orphans = append(result.Orphans, asset)
			continue
		}
		result.Pending = append(result.Pending, asset)
	}

	s.logger.Info("scan complete",
		logging.Int("checked", result.Scanned),
		logging.Int("pending", len(result.Pending)),
		logging.Int("orphans", len(result.Orphans)))
	return result, nil
}
