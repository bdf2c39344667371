package tablelog

import (
	"log/slog"
	"strings"
)

// ProcessType categorizes the subsystem a record originates from.
type ProcessType string

const (
	ProcessUI     ProcessType = "ui"
	ProcessCore   ProcessType = "core"
	ProcessSystem ProcessType = "system"
	ProcessSpeech ProcessType = "speech"
	ProcessInput  ProcessType = "input"
)

// Status is the severity of a record. The string forms appear verbatim in
// persisted log files and must not change.
type Status string

const (
	StatusFailure     Status = "failure"
	StatusSuccess     Status = "success"
	StatusWarning     Status = "warning"
	StatusCritical    Status = "critical"
	StatusInformation Status = "information"
	StatusDebug       Status = "debug"
)

// LevelCritical is the mirror-stream level for critical records.
const LevelCritical = slog.LevelError + 4

// ParseProcessType coerces input to a known process type; unrecognized
// values degrade to ProcessSystem.
func ParseProcessType(value string) ProcessType {
	pt := ProcessType(strings.ToLower(value))
	switch pt {
	case ProcessUI, ProcessCore, ProcessSystem, ProcessSpeech, ProcessInput:
		return pt
	default:
		return ProcessSystem
	}
}

// ParseStatus coerces input to a known status; unrecognized values degrade
// to StatusInformation.
func ParseStatus(value string) Status {
	st := Status(strings.ToLower(value))
	switch st {
	case StatusFailure, StatusSuccess, StatusWarning, StatusCritical, StatusInformation, StatusDebug:
		return st
	default:
		return StatusInformation
	}
}

// mirrorLevel maps a record status to the level used on the mirror stream.
func (s Status) mirrorLevel() slog.Level {
	switch s {
	case StatusCritical:
		return LevelCritical
	case StatusFailure:
		return slog.LevelError
	case StatusWarning:
		return slog.LevelWarn
	case StatusDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
