// Package tablelog writes fixed-width, pipe-delimited log tables alongside
// the line-oriented mirror stream.
package tablelog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ubuntu-dictation/dictation/internal/version"
)

const (
	colPadding    = 1
	timeLayout    = "2006-01-02 15:04:05"
	fileTimeStamp = "20060102_150405"
)

type column struct {
	name  string
	width int
}

// columns fixes the output format: order, names, and widths are part of the
// persisted file contract.
var columns = []column{
	{"timestamp", 25},
	{"task", 15},
	{"function", 30},
	{"file", 25},
	{"message", 50},
	{"process_type", 15},
	{"status", 15},
}

var columnTitles = map[string]string{
	"timestamp":    " TIMESTAMP ",
	"task":         " TASK ",
	"function":     " FUNCTION ",
	"file":         " FILE ",
	"message":      " MESSAGE ",
	"process_type": " PROCESS_TYPE ",
	"status":       " STATUS ",
}

const messageWidth = 50

// Writer owns one append-only tabular log file for the lifetime of a process
// run. Construct it once at startup, pass it by reference, and Close it at
// shutdown.
type Writer struct {
	appName string
	path    string
	mirror  *slog.Logger

	mu        sync.Mutex
	debug     bool
	closeOnce sync.Once
}

// New creates the per-run log file under dir, writes the table header, and
// emits one record announcing initialization. The mirror logger receives an
// unwrapped copy of every record; nil disables mirroring.
func New(appName, dir string, mirror *slog.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create log directory %q: %w", dir, err)
	}

	name := fmt.Sprintf("%s_%s.log", appName, time.Now().Format(fileTimeStamp))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(headerBlock()), 0o600); err != nil {
		return nil, fmt.Errorf("write log header %q: %w", path, err)
	}

	w := &Writer{appName: appName, path: path, mirror: mirror}
	w.Info("setup_logging", fmt.Sprintf("Iniciado logger para %s v%s", appName, version.Version), ProcessSystem)
	return w, nil
}

// Path returns the active log file path.
func (w *Writer) Path() string {
	return w.path
}

// SetDebug enables or disables debug records.
func (w *Writer) SetDebug(enabled bool) {
	w.mu.Lock()
	w.debug = enabled
	w.mu.Unlock()
}

// Entry records one event. An empty task defaults to the application name.
func (w *Writer) Entry(function, message string, processType ProcessType, status Status, task string) {
	w.log(function, message, processType, status, task)
}

// Info records an informational event.
func (w *Writer) Info(function, message string, processType ProcessType) {
	w.log(function, message, processType, StatusInformation, "")
}

// Debug records a debug event; a no-op unless debug mode is enabled.
func (w *Writer) Debug(function, message string, processType ProcessType) {
	w.mu.Lock()
	enabled := w.debug
	w.mu.Unlock()
	if !enabled {
		return
	}
	w.log(function, message, processType, StatusDebug, "")
}

// Success records a success event.
func (w *Writer) Success(function, message string, processType ProcessType) {
	w.log(function, message, processType, StatusSuccess, "")
}

// Warning records a warning event.
func (w *Writer) Warning(function, message string, processType ProcessType) {
	w.log(function, message, processType, StatusWarning, "")
}

// Error records a failure event.
func (w *Writer) Error(function, message string, processType ProcessType) {
	w.log(function, message, processType, StatusFailure, "")
}

// Critical records a critical event, followed by an extra separator line.
func (w *Writer) Critical(function, message string, processType ProcessType) {
	w.log(function, message, processType, StatusCritical, "")
}

// Close appends the closing footer block. Idempotent: invoked twice it
// writes exactly one footer. It never fails the caller.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		sep := separatorLine()
		var b strings.Builder
		b.WriteString(sep + "\n")
		b.WriteString("| Log encerrado em: " + time.Now().Format(timeLayout) + strings.Repeat(" ", 150) + "|\n")
		b.WriteString(sep + "\n")
		w.append(b.String())
	})
	return nil
}

// log renders and appends one record. Every public entry point calls it
// directly so caller attribution sits at a constant three frames up.
func (w *Writer) log(function, message string, processType ProcessType, status Status, task string) {
	if task == "" {
		task = w.appName
	}
	processType = ParseProcessType(string(processType))
	status = ParseStatus(string(status))

	sourceFile := callerFile(3)
	lines := wrapWords(message, messageWidth)

	values := map[string]string{
		"timestamp":    truncate(time.Now().Format(timeLayout), 25),
		"task":         truncate(task, 15),
		"function":     truncate(function, 30),
		"file":         truncate(sourceFile, 25),
		"message":      lines[0],
		"process_type": truncate(string(processType), 15),
		"status":       truncate(string(status), 15),
	}

	var b strings.Builder
	b.WriteString(renderRow(values) + "\n")
	for _, line := range lines[1:] {
		b.WriteString(renderContinuation(line) + "\n")
	}
	if status == StatusCritical {
		b.WriteString(separatorLine() + "\n")
	}
	w.append(b.String())

	if w.mirror != nil {
		w.mirror.Log(context.Background(), status.mirrorLevel(),
			fmt.Sprintf("%s - %s: %s", task, function, message))
	}
}

// append writes a chunk to the log file. Write failures are swallowed:
// logging must never fault the caller.
func (w *Writer) append(chunk string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(chunk)
}

// callerFile resolves the originating source file name skip frames above.
func callerFile(skip int) string {
	_, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown.go"
	}
	return filepath.Base(file)
}

// separatorLine renders `+---+` boundaries sized to each column plus its
// padding margins.
func separatorLine() string {
	var b strings.Builder
	b.WriteByte('+')
	for _, col := range columns {
		b.WriteString(strings.Repeat("-", col.width+colPadding*2))
		b.WriteByte('+')
	}
	return b.String()
}

// headerBlock renders the separator/title/separator preamble. Title
// centering keeps the spare space on the left when the split is odd.
func headerBlock() string {
	sep := separatorLine()

	var b strings.Builder
	b.WriteString(sep + "\n|")
	for _, col := range columns {
		title := columnTitles[col.name]
		left := colPadding + (col.width-len(title)+1)/2
		right := col.width - (len(title) - 1) - left + colPadding
		b.WriteString(strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + "|")
	}
	b.WriteString("\n" + sep + "\n")
	return b.String()
}

// renderRow renders one full table row from per-column content.
func renderRow(values map[string]string) string {
	var b strings.Builder
	b.WriteByte('|')
	for _, col := range columns {
		b.WriteString(cell(values[col.name], col.width))
		b.WriteByte('|')
	}
	return b.String()
}

// renderContinuation renders a wrapped-message row: blank cells everywhere
// except the message column.
func renderContinuation(line string) string {
	var b strings.Builder
	b.WriteByte('|')
	for _, col := range columns {
		if col.name == "message" {
			b.WriteString(cell(line, col.width))
		} else {
			b.WriteString(strings.Repeat(" ", col.width+colPadding*2))
		}
		b.WriteByte('|')
	}
	return b.String()
}

// cell left-aligns content inside its padded column. Overwide content (only
// possible for unsplittable message words) keeps its full text.
func cell(content string, width int) string {
	right := width - utf8.RuneCountInString(content) + colPadding
	if right < 0 {
		right = 0
	}
	return strings.Repeat(" ", colPadding) + content + strings.Repeat(" ", right)
}

// truncate limits content to width runes.
func truncate(content string, width int) string {
	runes := []rune(content)
	if len(runes) <= width {
		return content
	}
	return string(runes[:width])
}
