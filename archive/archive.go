package archive

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"eliasstats/utils"
)

// Uploader copies a saved report somewhere off the machine.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// Cleanup removes the regular files left in dir by a previous run and
// creates dir when it does not exist. Subdirectories are left alone.
func Cleanup(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, utils.ErrorWithTrace(err)
		}
		slog.Info("created download dir", "dir", dir)
		return 0, nil
	}
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}

	removed := 0
	errs := []error{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			slog.Warn("failed to remove old report", "file", e.Name(), "err", err)
			errs = append(errs, err)
			continue
		}
		removed++
	}
	slog.Info("cleaned download dir", "dir", dir, "removed", removed)
	return removed, errors.Join(errs...)
}

// Save writes content to <dir>/<slug>.txt and returns the file path.
func Save(dir, slug, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", utils.ErrorWithTrace(err)
	}
	path := filepath.Join(dir, slug+".txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", utils.ErrorWithTrace(err)
	}
	slog.Debug("saved report", "path", path, "chars", len(content))
	return path, nil
}
