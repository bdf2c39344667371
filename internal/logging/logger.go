// Package logging configures the line-oriented mirror log runtime.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	filePrefix    = "ubuntu-dictation-"
	maxLogSizeMB  = 5
	maxLogBackups = 3
)

// Options controls mirror log construction.
type Options struct {
	// Dir overrides the resolved log directory; empty uses ResolveDir.
	Dir string
	// Level is the minimum level written to the stream.
	Level slog.Level
	// Console, when non-nil, receives a tee of every line.
	Console io.Writer
}

// Runtime bundles the configured logger and its rotating file sink.
type Runtime struct {
	Logger *slog.Logger
	Path   string
	closer io.Closer
}

// Close flushes and closes the logger output sink.
func (r Runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// New builds a text logger over a size-capped rotating file named for the
// current date.
func New(opts Options) (Runtime, error) {
	dir := opts.Dir
	if dir == "" {
		resolved, err := ResolveDir()
		if err != nil {
			return Runtime{}, err
		}
		dir = resolved
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Runtime{}, err
	}

	path := filepath.Join(dir, filePrefix+time.Now().Format("2006-01-02")+".log")
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
	}

	var sink io.Writer = rotator
	if opts.Console != nil {
		sink = io.MultiWriter(rotator, opts.Console)
	}

	h := slog.NewTextHandler(sink, &slog.HandlerOptions{Level: opts.Level})
	return Runtime{Logger: slog.New(h), Path: path, closer: rotator}, nil
}

// ResolveDir selects XDG_DATA_HOME when available, otherwise ~/.local/share.
func ResolveDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "ubuntu-dictation", "logs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "ubuntu-dictation", "logs"), nil
}
