// Package app wires the CLI surface to the settings, logging, and table-log
// subsystems.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ubuntu-dictation/dictation/internal/cli"
	"github.com/ubuntu-dictation/dictation/internal/doctor"
	"github.com/ubuntu-dictation/dictation/internal/logging"
	"github.com/ubuntu-dictation/dictation/internal/settings"
	"github.com/ubuntu-dictation/dictation/internal/tablelog"
	"github.com/ubuntu-dictation/dictation/internal/version"
)

const appName = "Ubuntu Dictation"

// logRetainFiles caps how many mirror log files `logs purge` keeps.
const logRetainFiles = 20

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("dictation"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("dictation"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	settingsPath, err := settings.ResolvePath(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	logDir, err := logging.ResolveDir()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	switch parsed.Command {
	case cli.CommandDoctor:
		if len(parsed.Args) > 0 {
			fmt.Fprintf(r.Stderr, "error: unexpected arguments after command %q\n", parsed.Command)
			return 2
		}
		report := doctor.Run(settingsPath, logDir)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandSettings:
		return r.commandSettings(parsed, settingsPath)
	case cli.CommandLogs:
		return r.commandLogs(parsed, logDir)
	case cli.CommandRun:
		if len(parsed.Args) > 0 {
			fmt.Fprintf(r.Stderr, "error: unexpected arguments after command %q\n", parsed.Command)
			return 2
		}
		return r.commandRun(ctx, parsed, settingsPath, logDir)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// commandRun performs the application startup sequence: mirror logging,
// tabular writer, settings load. Speech and UI modules are placeholders, so
// the skeleton reports status and exits.
func (r Runner) commandRun(ctx context.Context, parsed cli.Parsed, settingsPath, logDir string) int {
	level := slog.LevelInfo
	if parsed.Debug {
		level = slog.LevelDebug
	}

	logRuntime, err := logging.New(logging.Options{
		Dir:     logDir,
		Level:   level,
		Console: r.consoleWriter(),
	})
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	table, err := tablelog.New(appName, logDir, logger)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup table log: %v\n", err)
		return 1
	}
	defer func() { _ = table.Close() }()

	store := settings.NewStore(settingsPath, logger)
	doc := store.Load()
	table.Success("load_settings", fmt.Sprintf("loaded settings with %d sections", len(doc)), tablelog.ProcessCore)

	debugMode := parsed.Debug
	if enabled, ok := store.Get("advanced.debug_mode", false).(bool); ok && enabled {
		debugMode = true
	}
	table.SetDebug(debugMode)

	table.Info("main", fmt.Sprintf("starting %s v%s", appName, version.Version), tablelog.ProcessSystem)
	engine, _ := store.Get("speech_recognition.engine", "vosk").(string)
	language, _ := store.Get("speech_recognition.language", "pt-BR").(string)
	table.Debug("main", fmt.Sprintf("configured engine=%s language=%s", engine, language), tablelog.ProcessSpeech)

	if !graphicalSessionPresent() {
		table.Critical("main", "no graphical session detected (DISPLAY and WAYLAND_DISPLAY are unset)", tablelog.ProcessSystem)
		fmt.Fprintln(r.Stderr, "error: this application requires a graphical session")
		return 1
	}

	select {
	case <-ctx.Done():
		table.Warning("main", "startup interrupted by signal", tablelog.ProcessSystem)
		return 1
	default:
	}

	fmt.Fprintf(r.Stdout, "settings: %s\n", store.Path())
	fmt.Fprintf(r.Stdout, "table log: %s\n", table.Path())
	fmt.Fprintf(r.Stdout, "mirror log: %s\n", logRuntime.Path)
	fmt.Fprintln(r.Stdout, "speech recognition and UI modules are not implemented yet")

	table.Info("main", "application shutdown", tablelog.ProcessSystem)
	return 0
}

func (r Runner) commandSettings(parsed cli.Parsed, settingsPath string) int {
	if len(parsed.Args) == 0 {
		fmt.Fprintln(r.Stderr, "error: settings requires a subcommand: get, set, or reset")
		return 2
	}

	store := settings.NewStore(settingsPath, r.Logger)

	switch parsed.Args[0] {
	case "get":
		if len(parsed.Args) != 2 {
			fmt.Fprintln(r.Stderr, "error: usage: settings get <dotted.path>")
			return 2
		}
		value := store.Get(parsed.Args[1], nil)
		if value == nil {
			fmt.Fprintf(r.Stderr, "error: setting %q not found\n", parsed.Args[1])
			return 1
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintln(r.Stdout, string(encoded))
		return 0
	case "set":
		if len(parsed.Args) != 3 {
			fmt.Fprintln(r.Stderr, "error: usage: settings set <dotted.path> <value>")
			return 2
		}
		if !store.Set(parsed.Args[1], parseSettingValue(parsed.Args[2])) {
			fmt.Fprintf(r.Stderr, "error: could not update setting %q\n", parsed.Args[1])
			return 1
		}
		return 0
	case "reset":
		if len(parsed.Args) != 1 {
			fmt.Fprintln(r.Stderr, "error: settings reset takes no arguments")
			return 2
		}
		if !store.Reset() {
			fmt.Fprintln(r.Stderr, "error: could not reset settings")
			return 1
		}
		fmt.Fprintln(r.Stdout, "settings reset to defaults")
		return 0
	default:
		fmt.Fprintf(r.Stderr, "error: unknown settings subcommand %q\n", parsed.Args[0])
		return 2
	}
}

func (r Runner) commandLogs(parsed cli.Parsed, logDir string) int {
	if len(parsed.Args) == 0 {
		fmt.Fprintln(r.Stderr, "error: logs requires a subcommand: list or purge")
		return 2
	}

	switch parsed.Args[0] {
	case "list":
		files, err := logging.ListFiles(logDir)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		if len(files) == 0 {
			fmt.Fprintln(r.Stdout, "no log files found")
			return 0
		}
		for _, path := range files {
			fmt.Fprintln(r.Stdout, path)
		}
		return 0
	case "purge":
		removed, err := logging.Purge(logDir, logRetainFiles, r.Logger)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintf(r.Stdout, "removed %d log files\n", removed)
		return 0
	default:
		fmt.Fprintf(r.Stderr, "error: unknown logs subcommand %q\n", parsed.Args[0])
		return 2
	}
}

// consoleWriter returns stderr for the mirror tee only when it is a
// terminal, so piped and test output stays clean.
func (r Runner) consoleWriter() io.Writer {
	f, ok := r.Stderr.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return f
}

// parseSettingValue interprets CLI values as JSON scalars when possible and
// raw strings otherwise.
func parseSettingValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err == nil {
		return value
	}
	return raw
}

func graphicalSessionPresent() bool {
	return strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" ||
		strings.TrimSpace(os.Getenv("DISPLAY")) != ""
}
