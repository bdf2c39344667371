package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveDirUsesXDGDataHome(t *testing.T) {
	xdgDataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdgDataHome)
	t.Setenv("HOME", t.TempDir())

	dir, err := ResolveDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(xdgDataHome, "ubuntu-dictation", "logs"), dir)
}

func TestResolveDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", home)

	dir, err := ResolveDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "ubuntu-dictation", "logs"), dir)
}

func TestNewWritesDatedRotatingLogFile(t *testing.T) {
	dir := t.TempDir()

	runtime, err := New(Options{Dir: dir, Level: slog.LevelInfo})
	require.NoError(t, err)

	runtime.Logger.Info("unit-test-log", "component", "logging")
	require.NoError(t, runtime.Close())

	wantName := filePrefix + time.Now().Format("2006-01-02") + ".log"
	require.Equal(t, filepath.Join(dir, wantName), runtime.Path)

	contents, err := os.ReadFile(runtime.Path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `msg=unit-test-log`)
	require.Contains(t, string(contents), `component=logging`)
}

func TestNewTeesToConsoleWriter(t *testing.T) {
	var console bytes.Buffer

	runtime, err := New(Options{Dir: t.TempDir(), Level: slog.LevelDebug, Console: &console})
	require.NoError(t, err)

	runtime.Logger.Debug("tee-check")
	require.NoError(t, runtime.Close())

	require.Contains(t, console.String(), "tee-check")
	contents, err := os.ReadFile(runtime.Path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "tee-check")
}

func TestLevelGatesOutput(t *testing.T) {
	var console bytes.Buffer

	runtime, err := New(Options{Dir: t.TempDir(), Level: slog.LevelInfo, Console: &console})
	require.NoError(t, err)
	defer func() { _ = runtime.Close() }()

	runtime.Logger.Debug("dropped")
	runtime.Logger.Info("kept")

	require.NotContains(t, console.String(), "dropped")
	require.Contains(t, console.String(), "kept")
}

func writeLogFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("log\n"), 0o600))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestListFilesNewestFirst(t *testing.T) {
	dir := t.TempDir()
	oldest := writeLogFile(t, dir, filePrefix+"2024-01-01.log", 72*time.Hour)
	middle := writeLogFile(t, dir, filePrefix+"2024-01-02.log", 48*time.Hour)
	newest := writeLogFile(t, dir, filePrefix+"2024-01-03.log", 24*time.Hour)
	writeLogFile(t, dir, "unrelated.log", time.Hour)

	files, err := ListFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{newest, middle, oldest}, files)
}

func TestPurgeKeepsNewestFiles(t *testing.T) {
	dir := t.TempDir()
	oldest := writeLogFile(t, dir, filePrefix+"2024-01-01.log", 72*time.Hour)
	middle := writeLogFile(t, dir, filePrefix+"2024-01-02.log", 48*time.Hour)
	newest := writeLogFile(t, dir, filePrefix+"2024-01-03.log", 24*time.Hour)

	removed, err := Purge(dir, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	files, err := ListFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{newest, middle}, files)
	require.NoFileExists(t, oldest)
}

func TestPurgeUnderLimitRemovesNothing(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, filePrefix+"2024-01-01.log", time.Hour)

	removed, err := Purge(dir, 5, nil)
	require.NoError(t, err)
	require.Zero(t, removed)
}
