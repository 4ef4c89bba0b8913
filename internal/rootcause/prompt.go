package rootcause

import (
	"fmt"
	"strings"

	"github.com/moolen/logtriage/internal/models"
)

const systemPrompt = "You are an expert SRE analyzing production logs. " +
	"Provide concise, actionable root cause analysis and fixes."

const promptInstructions = `Analyze these production logs and provide:
1. Root cause (one sentence)
2. Top 3 recommended fixes
3. Prevention strategy

Log Summary:
%s

Format your response as:
ROOT CAUSE: <one sentence>
FIXES:
1. <fix>
2. <fix>
3. <fix>
PREVENTION: <strategy>
`

// maxSampleEvents bounds the timeline excerpt in the prompt.
const maxSampleEvents = 5

// EstimateTokens approximates the token count of a prompt. Both a
// character-based and a word-based estimate are taken and the larger
// wins, so dense text without spaces is not undercounted.
func EstimateTokens(s string) int {
	byChars := len(s) / 4
	byWords := len(strings.Fields(s)) * 4 / 3
	return max(byChars, byWords)
}

// promptResult carries the rendered prompt plus whether clusters had to
// be dropped to fit the token budget.
type promptResult struct {
	text      string
	truncated bool
}

// buildPrompt serializes the timeline and cluster summaries into a
// bounded prompt. When the full serialization exceeds the budget,
// cascade-trigger events and the clusters with the highest counts are
// kept and the rest dropped; the drop is flagged so the finding can
// carry an omission marker.
func buildPrompt(tl *models.Timeline, clusters models.ClusterList, tokenBudget int) promptResult {
	var header strings.Builder
	fmt.Fprintf(&header, "Errors found: %d\n", clusters.TotalCount())
	fmt.Fprintf(&header, "Unique error patterns: %d\n", len(clusters))
	fmt.Fprintf(&header, "Cascade window: %s\n", tl.CascadeWindow)

	// Trigger events are never dropped: they are the analysis target.
	var triggers strings.Builder
	triggers.WriteString("\nCascade trigger events:\n")
	for _, idx := range tl.Triggers() {
		ev := tl.Event(idx)
		fmt.Fprintf(&triggers, "- [%s] %s: %s\n",
			formatEventTime(ev), ev.Severity, firstLine(ev.Description()))
	}

	var sample strings.Builder
	sample.WriteString("\nTimeline excerpt:\n")
	for i := range tl.Events {
		if i >= maxSampleEvents {
			break
		}
		ev := &tl.Events[i]
		fmt.Fprintf(&sample, "[%s] %s: %s\n",
			formatEventTime(ev), ev.Severity, truncateText(firstLine(ev.Description()), 100))
	}

	fixed := header.String() + triggers.String() + sample.String()

	// Clusters by descending count, added until the budget is spent.
	sorted := append(models.ClusterList{}, clusters...)
	sorted.SortByCount()

	var body strings.Builder
	body.WriteString("\nTop error messages:\n")
	used := EstimateTokens(fmt.Sprintf(promptInstructions, fixed))
	truncated := false
	for _, c := range sorted {
		line := fmt.Sprintf("- (%dx) %s\n", c.Count, firstLine(c.RepresentativeMessage))
		cost := EstimateTokens(line)
		if used+cost > tokenBudget {
			truncated = true
			break
		}
		body.WriteString(line)
		used += cost
	}
	if truncated {
		body.WriteString("- (further patterns omitted to fit the size budget)\n")
	}

	context := fixed + body.String()
	return promptResult{
		text:      fmt.Sprintf(promptInstructions, context),
		truncated: truncated,
	}
}

func formatEventTime(ev *models.TimelineEvent) string {
	if ev.StartTime.IsZero() {
		return "unknown"
	}
	return ev.StartTime.Format("2006-01-02 15:04:05")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
