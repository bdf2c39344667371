package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ListFiles returns mirror log files under dir, newest modification first.
func ListFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.log"))
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return modTime(matches[i]).After(modTime(matches[j]))
	})
	return matches, nil
}

// Purge removes the oldest mirror log files beyond maxFiles and reports how
// many were removed. Per-file removal failures are logged and skipped.
func Purge(dir string, maxFiles int, logger *slog.Logger) (int, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return 0, err
	}
	if maxFiles < 0 {
		maxFiles = 0
	}
	if len(files) <= maxFiles {
		return 0, nil
	}

	removed := 0
	for _, path := range files[maxFiles:] {
		if err := os.Remove(path); err != nil {
			if logger != nil {
				logger.Warn("remove old log failed", "path", path, "error", err.Error())
			}
			continue
		}
		removed++
	}
	return removed, nil
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
