// Package parsing turns raw log lines into structured entries.
//
// The parser tries a fixed list of grammars in priority order and takes
// the first match. The ordering is part of the contract: given the same
// input, parsing is fully deterministic.
//
//	1. ISO-8601 timestamp prefix      2024-01-15 10:05:30 ERROR: msg
//	2. Bracket-wrapped ISO timestamp  [2024-01-15 10:05:30] ERROR msg
//	3. Syslog timestamp               Jan 15 10:05:30 host ERROR: msg
//	4. Logfmt level marker            time=... level=error msg="..."
//	5. Free-form date + level         15/Jan/2024 10:05:30 ERROR msg
//	6. Bare level marker              ERROR: msg  /  [ERROR] msg
//
// A line matching no grammar degrades to an UNKNOWN-level entry; parsing
// never fails on malformed input. The only stateful behaviour is the
// continuation rule: a marker-less line immediately following an
// ERROR/CRITICAL entry is absorbed into that entry's message.
package parsing

import (
	"regexp"
	"strings"
	"time"

	"github.com/moolen/logtriage/internal/logging"
	"github.com/moolen/logtriage/internal/models"
)

var (
	isoLinePattern = regexp.MustCompile(
		`^(\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?)\s+(\S+)\s*(.*)$`)
	bracketLinePattern = regexp.MustCompile(
		`^\[(\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?)\]\s+(\S+)\s*(.*)$`)
	syslogLinePattern = regexp.MustCompile(
		`^([A-Z][a-z]{2}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2})\s+(?:([\w.\-]+)\s+)?(\w+):\s+(.*)$`)
	logfmtLevelPattern = regexp.MustCompile(`(?i)\blevel=["']?(\w+)["']?`)
	logfmtTimePattern  = regexp.MustCompile(`(?i)\b(?:time|ts|timestamp)=["']?([^"'\s]+)["']?`)
	logfmtMsgPattern   = regexp.MustCompile(`(?i)\bmsg(?:sage)?=(?:"([^"]*)"|(\S+))`)
	logfmtSrcPattern   = regexp.MustCompile(`(?i)\b(?:source|service|component|logger)=["']?([\w.\-]+)["']?`)
	datePrefixPattern  = regexp.MustCompile(
		`(?i)^(.{6,40}?)\s+(DEBUG|TRACE|INFO|NOTICE|WARN|WARNING|ERROR|ERR|CRITICAL|CRIT|FATAL|PANIC):?\s+(.*)$`)
	bareLevelPattern = regexp.MustCompile(`^(?:\[(\w+)\]|(\w+):)\s+(.*)$`)

	// Leading "[component]" in the message body becomes the entry source
	sourcePrefixPattern = regexp.MustCompile(`^\[([\w.\-]+)\]\s+(.*)$`)
)

// Parser converts raw lines to LogEntry records.
type Parser struct {
	logger *logging.Logger
}

// New creates a Parser.
func New() *Parser {
	return &Parser{
		logger: logging.GetLogger("parsing"),
	}
}

// Parse converts the input lines into structured entries. One entry is
// produced per non-blank line, except continuation lines which are
// absorbed into the preceding ERROR/CRITICAL entry, so
// len(entries) + sum(ContinuationLines) equals the non-blank line count.
//
// Out-of-order timestamps are flagged on the affected entry but never
// reordered; file order is preserved throughout.
func (p *Parser) Parse(lines []string) []*models.LogEntry {
	entries := p.parseChunk(lines, 0)
	markOutOfOrder(entries)

	p.logger.DebugWithFields("parse complete",
		logging.Field("lines", len(lines)),
		logging.Field("entries", len(entries)),
	)
	return entries
}

// parseChunk parses lines with line numbers offset by base. It applies
// the continuation rule only within the chunk; callers splitting input
// into chunks must not place a boundary between an error line and its
// continuations (see ParseParallel).
func (p *Parser) parseChunk(lines []string, base int) []*models.LogEntry {
	entries := make([]*models.LogEntry, 0, len(lines))
	var prev *models.LogEntry

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r\n")
		lineNumber := base + i + 1

		if strings.TrimSpace(line) == "" {
			// A blank line ends any continuation run: the next
			// marker-less line no longer "immediately follows" an error.
			prev = nil
			continue
		}

		m, ok := matchLine(line)
		if !ok {
			// Continuation rule: marker-less line directly after an
			// ERROR/CRITICAL entry extends that entry's message.
			if prev != nil && prev.Level.IsError() {
				prev.Message += "\n" + line
				prev.ContinuationLines++
				continue
			}
			entry := &models.LogEntry{
				Level:      models.LevelUnknown,
				Message:    line,
				RawLine:    line,
				LineNumber: lineNumber,
			}
			entries = append(entries, entry)
			prev = entry
			continue
		}

		entry := &models.LogEntry{
			Timestamp:  m.timestamp,
			Level:      m.level,
			Source:     m.source,
			Message:    m.message,
			RawLine:    line,
			LineNumber: lineNumber,
		}
		entries = append(entries, entry)
		prev = entry
	}

	return entries
}

// markOutOfOrder flags entries whose timestamp precedes the maximum
// timestamp seen so far in file order.
func markOutOfOrder(entries []*models.LogEntry) {
	var maxSeen time.Time
	for _, e := range entries {
		if !e.HasTimestamp() {
			continue
		}
		if !maxSeen.IsZero() && e.Timestamp.Before(maxSeen) {
			e.OutOfOrder = true
			continue
		}
		maxSeen = e.Timestamp
	}
}

// extractSource splits a leading "[component]" token off the message.
func extractSource(message string) (source, rest string) {
	if m := sourcePrefixPattern.FindStringSubmatch(message); m != nil {
		return m[1], m[2]
	}
	return "", message
}
