package parsing

import (
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"

	"github.com/moolen/logtriage/internal/models"
)

// lineMatch holds the fields extracted by a grammar.
type lineMatch struct {
	timestamp time.Time
	level     models.Level
	source    string
	message   string
}

// matchLine tries each grammar in priority order and returns the first
// match. The order is fixed and part of the parser contract.
func matchLine(line string) (lineMatch, bool) {
	for _, g := range grammars {
		if m, ok := g.match(line); ok {
			return m, true
		}
	}
	return lineMatch{}, false
}

type grammar struct {
	name  string
	match func(line string) (lineMatch, bool)
}

// grammars is the fixed priority list. Specific timestamp formats come
// before generic ones so that a line is never claimed by a weaker
// grammar when a stronger one applies.
var grammars = []grammar{
	{name: "iso", match: matchISO},
	{name: "iso-bracket", match: matchBracketISO},
	{name: "syslog", match: matchSyslog},
	{name: "logfmt", match: matchLogfmt},
	{name: "date-prefix", match: matchDatePrefix},
	{name: "bare-level", match: matchBareLevel},
}

// matchISO handles "2024-01-15 10:05:30 ERROR: message" and RFC3339
// variants. The token after the timestamp is taken as the level when it
// is a known level name; otherwise the level is UNKNOWN and the token
// stays part of the message.
func matchISO(line string) (lineMatch, bool) {
	m := isoLinePattern.FindStringSubmatch(line)
	if m == nil {
		return lineMatch{}, false
	}
	ts, ok := parseISOTimestamp(m[1])
	if !ok {
		return lineMatch{}, false
	}
	level, message := splitLevelToken(m[2], m[3])
	source, message := extractSource(message)
	return lineMatch{timestamp: ts, level: level, source: source, message: message}, true
}

// matchBracketISO handles "[2024-01-15 10:05:30] ERROR message".
func matchBracketISO(line string) (lineMatch, bool) {
	m := bracketLinePattern.FindStringSubmatch(line)
	if m == nil {
		return lineMatch{}, false
	}
	ts, ok := parseISOTimestamp(m[1])
	if !ok {
		return lineMatch{}, false
	}
	level, message := splitLevelToken(m[2], m[3])
	source, message := extractSource(message)
	return lineMatch{timestamp: ts, level: level, source: source, message: message}, true
}

// matchSyslog handles "Jan 15 10:05:30 [host] ERROR: message".
// Syslog timestamps carry no year; the current year is assumed.
func matchSyslog(line string) (lineMatch, bool) {
	m := syslogLinePattern.FindStringSubmatch(line)
	if m == nil {
		return lineMatch{}, false
	}
	level := models.ParseLevel(m[3])
	if level == models.LevelUnknown {
		return lineMatch{}, false
	}
	ts, ok := parseSyslogTimestamp(m[1])
	if !ok {
		return lineMatch{}, false
	}
	source := m[2]
	message := m[4]
	if source == "" {
		source, message = extractSource(message)
	}
	return lineMatch{timestamp: ts, level: level, source: source, message: message}, true
}

// matchLogfmt handles key=value lines carrying a level marker, such as
// `time=2024-01-15T10:05:30Z level=error msg="connect failed"`.
func matchLogfmt(line string) (lineMatch, bool) {
	lm := logfmtLevelPattern.FindStringSubmatch(line)
	if lm == nil {
		return lineMatch{}, false
	}
	level := models.ParseLevel(lm[1])
	if level == models.LevelUnknown {
		return lineMatch{}, false
	}

	var ts time.Time
	if tm := logfmtTimePattern.FindStringSubmatch(line); tm != nil {
		if parsed, ok := parseISOTimestamp(tm[1]); ok {
			ts = parsed
		}
	}

	message := line
	if mm := logfmtMsgPattern.FindStringSubmatch(line); mm != nil {
		if mm[1] != "" {
			message = mm[1]
		} else {
			message = mm[2]
		}
	}

	var source string
	if sm := logfmtSrcPattern.FindStringSubmatch(line); sm != nil {
		source = sm[1]
	}

	return lineMatch{timestamp: ts, level: level, source: source, message: message}, true
}

// matchDatePrefix handles lines with a free-form date prefix followed by
// a level token, e.g. "15/Jan/2024 10:05:30 ERROR message". The prefix
// is resolved through go-dateparser; when it does not parse as a date
// the grammar does not match and the line falls through.
func matchDatePrefix(line string) (lineMatch, bool) {
	m := datePrefixPattern.FindStringSubmatch(line)
	if m == nil {
		return lineMatch{}, false
	}
	ts, ok := parseFuzzyTimestamp(m[1])
	if !ok {
		return lineMatch{}, false
	}
	level := models.ParseLevel(m[2])
	source, message := extractSource(m[3])
	return lineMatch{timestamp: ts, level: level, source: source, message: message}, true
}

// matchBareLevel handles "ERROR: message" and "[ERROR] message" without
// any timestamp. Only known level names match; "Notes: text" stays an
// UNKNOWN entry rather than being claimed with a bogus level.
func matchBareLevel(line string) (lineMatch, bool) {
	m := bareLevelPattern.FindStringSubmatch(line)
	if m == nil {
		return lineMatch{}, false
	}
	token := m[1]
	if token == "" {
		token = m[2]
	}
	level := models.ParseLevel(token)
	if level == models.LevelUnknown {
		return lineMatch{}, false
	}
	source, message := extractSource(m[3])
	return lineMatch{level: level, source: source, message: message}, true
}

// splitLevelToken interprets token as a level name. Known names yield
// that level; unknown tokens yield UNKNOWN with the token prepended back
// onto the message.
func splitLevelToken(token, rest string) (models.Level, string) {
	cleaned := strings.TrimSuffix(strings.Trim(token, "[]"), ":")
	level := models.ParseLevel(cleaned)
	if level == models.LevelUnknown {
		if rest == "" {
			return models.LevelUnknown, token
		}
		return models.LevelUnknown, token + " " + rest
	}
	return level, rest
}

// isoLayouts are tried in order against ISO-like timestamp strings.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
}

func parseISOTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseSyslogTimestamp parses "Jan 15 10:05:30", assuming the current
// year since syslog timestamps do not carry one.
func parseSyslogTimestamp(s string) (time.Time, bool) {
	ts, err := time.Parse("Jan _2 15:04:05", s)
	if err != nil {
		return time.Time{}, false
	}
	now := time.Now()
	return time.Date(now.Year(), ts.Month(), ts.Day(),
		ts.Hour(), ts.Minute(), ts.Second(), 0, time.UTC), true
}

// parseFuzzyTimestamp resolves a free-form date string through
// go-dateparser. Used only as the last timestamp grammar so that the
// strict formats above stay authoritative.
func parseFuzzyTimestamp(s string) (time.Time, bool) {
	parser := dps.Parser{}
	cfg := &dps.Configuration{
		PreferredDateSource: dps.CurrentPeriod,
	}
	parsed, err := parser.Parse(cfg, strings.TrimSpace(s))
	if err != nil || parsed.IsZero() {
		return time.Time{}, false
	}
	return parsed.Time, true
}
