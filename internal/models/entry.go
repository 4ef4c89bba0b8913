// Package models defines the value types flowing through the analysis
// pipeline: parsed log entries, error clusters, the incident timeline,
// root-cause findings and the final report.
//
// All entities are created within a single analysis run and discarded at
// its end. None of them are mutated after the producing pipeline stage
// hands them off.
package models

import (
	"strings"
	"time"
)

// Level classifies the severity of a log entry.
type Level int

const (
	// LevelUnknown marks lines that carry no recognizable level marker
	LevelUnknown Level = iota
	// LevelDebug for detailed debugging output
	LevelDebug
	// LevelInfo for informational messages
	LevelInfo
	// LevelWarn for warnings
	LevelWarn
	// LevelError for errors
	LevelError
	// LevelCritical for critical/fatal failures
	LevelCritical
)

// String returns the canonical upper-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// IsError reports whether the level belongs to the error class that is
// subject to clustering (ERROR and CRITICAL).
func (l Level) IsError() bool {
	return l == LevelError || l == LevelCritical
}

// ParseLevel maps a level token from a log line to a Level.
// Synonyms used in the wild are folded into the canonical set:
// WARNING -> WARN, ERR -> ERROR, FATAL/CRIT -> CRITICAL.
// Unrecognized tokens map to LevelUnknown.
func ParseLevel(token string) Level {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "DEBUG", "TRACE":
		return LevelDebug
	case "INFO", "NOTICE":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR", "ERR":
		return LevelError
	case "CRITICAL", "CRIT", "FATAL", "PANIC":
		return LevelCritical
	default:
		return LevelUnknown
	}
}

// LogEntry is a single structured log record produced by the parser.
// Entries are immutable after parsing completes; ordering is file order.
type LogEntry struct {
	// Timestamp is the parsed event time. The zero value means the line
	// carried no parsable timestamp.
	Timestamp time.Time

	// Level is the parsed severity, LevelUnknown if no marker matched
	Level Level

	// Source is the component/service name if one was extractable
	Source string

	// Message is the log text after timestamp/level/source extraction.
	// Continuation lines (stack traces) are appended newline-separated.
	Message string

	// RawLine is the original unmodified input line
	RawLine string

	// LineNumber is the 1-based position of the line in the input
	LineNumber int

	// ContinuationLines counts marker-less follow-up lines that were
	// absorbed into Message instead of becoming entries of their own
	ContinuationLines int

	// OutOfOrder is set when the entry's timestamp precedes that of an
	// earlier entry. The entry keeps its file-order position.
	OutOfOrder bool
}

// HasTimestamp reports whether the entry carries a parsed timestamp.
func (e *LogEntry) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}
