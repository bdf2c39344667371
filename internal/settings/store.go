// Package settings persists the layered application settings document and
// exposes dotted-path access to it.
package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Store reads and writes the settings document at one path. Operations never
// return errors to callers: failures degrade to defaults or a false result
// and are reported through the logger.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore builds a store for the given settings path. A nil logger
// discards failure reports.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted document and deep-merges it onto the compiled-in
// defaults: user values win, defaults fill gaps. A missing file persists and
// returns the defaults; any other failure returns the defaults unpersisted.
func (s *Store) Load() map[string]any {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := Defaults()
			if !s.Save(doc) {
				s.logger.Warn("persist default settings failed", "path", s.path)
			}
			return doc
		}
		s.logger.Error("read settings failed", "path", s.path, "error", err.Error())
		return Defaults()
	}

	var user map[string]any
	if err := json.Unmarshal(content, &user); err != nil {
		s.logger.Error("parse settings failed", "path", s.path, "error", err.Error())
		return Defaults()
	}

	doc := Defaults()
	merge(doc, user)
	return doc
}

// Save serializes the document with 4-space indentation and persists it.
func (s *Store) Save(doc map[string]any) bool {
	encoded, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		s.logger.Error("encode settings failed", "path", s.path, "error", err.Error())
		return false
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Error("create settings directory failed", "path", s.path, "error", err.Error())
		return false
	}

	if err := os.WriteFile(s.path, append(encoded, '\n'), 0o600); err != nil {
		s.logger.Error("write settings failed", "path", s.path, "error", err.Error())
		return false
	}
	return true
}

// Get returns the value at a dotted path, or fallback when any path segment
// is missing.
func (s *Store) Get(path string, fallback any) any {
	encoded, err := json.Marshal(s.Load())
	if err != nil {
		s.logger.Error("encode settings failed", "path", s.path, "error", err.Error())
		return fallback
	}

	result := gjson.GetBytes(encoded, path)
	if !result.Exists() {
		return fallback
	}
	return result.Value()
}

// Set updates the value at a dotted path, creating intermediate levels as
// needed, and persists the document.
func (s *Store) Set(path string, value any) bool {
	encoded, err := json.Marshal(s.Load())
	if err != nil {
		s.logger.Error("encode settings failed", "path", s.path, "error", err.Error())
		return false
	}

	updated, err := sjson.SetBytes(encoded, path, value)
	if err != nil {
		s.logger.Error("set setting failed", "key", path, "error", err.Error())
		return false
	}

	var doc map[string]any
	if err := json.Unmarshal(updated, &doc); err != nil {
		s.logger.Error("decode updated settings failed", "key", path, "error", err.Error())
		return false
	}
	return s.Save(doc)
}

// Reset persists the compiled-in defaults verbatim.
func (s *Store) Reset() bool {
	return s.Save(Defaults())
}
