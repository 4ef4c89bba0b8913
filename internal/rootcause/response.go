package rootcause

import (
	"regexp"
	"strings"
)

var (
	rootCausePattern  = regexp.MustCompile(`(?m)^\s*ROOT CAUSE:\s*(.+)$`)
	fixItemPattern    = regexp.MustCompile(`(?m)^\s*\d+[.)]\s*(.+)$`)
	preventionPattern = regexp.MustCompile(`(?m)^\s*PREVENTION:\s*(.+)$`)
)

// sections holds the parsed parts of a generated analysis.
type sections struct {
	summary    string
	fixes      []string
	prevention string
	// matched reports whether the text followed the expected
	// ROOT CAUSE / FIXES / PREVENTION layout. A mismatch downgrades
	// confidence instead of failing the analysis.
	matched bool
}

// parseSections extracts summary, fixes and prevention notes from the
// generated text. The expected layout is fixed:
//
//	ROOT CAUSE: <one sentence>
//	FIXES:
//	1. <fix>
//	...
//	PREVENTION: <strategy>
//
// When the layout is absent the whole text becomes the summary and
// matched is false.
func parseSections(text string) sections {
	text = strings.TrimSpace(text)
	out := sections{}

	rc := rootCausePattern.FindStringSubmatch(text)
	if rc == nil {
		out.summary = text
		return out
	}
	out.summary = strings.TrimSpace(rc[1])

	// Numbered items between FIXES: and PREVENTION: (or end of text)
	fixesRegion := text
	if i := strings.Index(text, "FIXES:"); i >= 0 {
		fixesRegion = text[i:]
	}
	if i := strings.Index(fixesRegion, "PREVENTION:"); i >= 0 {
		fixesRegion = fixesRegion[:i]
	}
	for _, m := range fixItemPattern.FindAllStringSubmatch(fixesRegion, -1) {
		out.fixes = append(out.fixes, strings.TrimSpace(m[1]))
	}

	if pv := preventionPattern.FindStringSubmatch(text); pv != nil {
		out.prevention = strings.TrimSpace(pv[1])
	}

	out.matched = out.summary != "" && len(out.fixes) > 0 && out.prevention != ""
	return out
}
