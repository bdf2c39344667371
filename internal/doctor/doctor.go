// Package doctor runs environment readiness checks for settings and log storage.
package doctor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes settings/storage/session checks for the resolved paths.
func Run(settingsPath, logDir string) Report {
	checks := []Check{
		checkSettings(settingsPath),
		checkWritableDir("settings_dir", filepath.Dir(settingsPath)),
		checkWritableDir("log_dir", logDir),
		checkGraphicalSession(),
	}
	return Report{Checks: checks}
}

// checkSettings validates that the settings file, when present, parses as a
// JSON document. Absence is fine: defaults apply.
func checkSettings(path string) Check {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Check{Name: "settings", Pass: true, Message: fmt.Sprintf("%q not found; defaults will be used", path)}
	}
	if err != nil {
		return Check{Name: "settings", Pass: false, Message: fmt.Sprintf("read %q: %v", path, err)}
	}

	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return Check{Name: "settings", Pass: false, Message: fmt.Sprintf("invalid JSON in %q: %v", path, err)}
	}
	return Check{Name: "settings", Pass: true, Message: fmt.Sprintf("loaded %q", path)}
}

// checkWritableDir validates that dir can be created and written to.
func checkWritableDir(name, dir string) Check {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Check{Name: name, Pass: false, Message: fmt.Sprintf("create %q: %v", dir, err)}
	}

	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return Check{Name: name, Pass: false, Message: fmt.Sprintf("%q is not writable: %v", dir, err)}
	}
	probePath := probe.Name()
	_ = probe.Close()
	_ = os.Remove(probePath)

	return Check{Name: name, Pass: true, Message: fmt.Sprintf("writable at %q", dir)}
}

// checkGraphicalSession validates that an X11 or Wayland display is present.
func checkGraphicalSession() Check {
	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" || strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return Check{Name: "display", Pass: true, Message: "graphical session detected"}
	}
	return Check{Name: "display", Pass: false, Message: "no graphical session (DISPLAY and WAYLAND_DISPLAY are unset)"}
}
