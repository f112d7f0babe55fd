// Package staging manages the local scratch space where audio files
// live between download and archival. Each run owns one directory and
// removes it on the way out; the sweep reclaims directories left behind
// by crashed runs.
package staging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"scribe/internal/logging"
)

const runDirPrefix = "run-"

// NewRunDir creates a uniquely named staging directory for one run.
func NewRunDir(root string) (string, error) {
	dir := filepath.Join(root, runDirPrefix+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	return dir, nil
}

// Remove deletes a run's staging directory and everything in it.
func Remove(dir string) error {
	return os.RemoveAll(dir)
}

// CleanStale removes run directories older than maxAge. Crashed runs
// leave their staging behind; anything past the age cutoff cannot belong
// to a live run. Returns the number of directories removed.
func CleanStale(logger *slog.Logger, root string, maxAge time.Duration) int {
	log := logging.NewComponentLogger(logger, "staging")
	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("staging sweep failed", logging.Error(err))
		}
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), runDirPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			log.Warn("could not remove stale staging dir",
				logging.String("path", path),
				logging.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Info("removed stale staging dirs", logging.Int("count", removed))
	}
	return removed
}
