// Package render turns an analysis report into terminal, markdown and
// JSON representations.
package render

import (
	"fmt"
	"strings"

	"github.com/moolen/logtriage/internal/models"
)

const (
	// maxTopPatterns bounds the pattern list in rendered reports.
	maxTopPatterns = 5
	// maxTimelineEventsMarkdown bounds the timeline section in markdown.
	maxTimelineEventsMarkdown = 10
)

// Markdown renders the report as a markdown document.
func Markdown(report *models.AnalysisReport) string {
	var b strings.Builder

	b.WriteString("# Log Analysis Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total Entries:** %d\n", report.Summary.TotalEntries)
	fmt.Fprintf(&b, "- **Error Count:** %d\n", report.Summary.ErrorCount)
	fmt.Fprintf(&b, "- **Unique Error Patterns:** %d\n", report.Summary.UniqueErrors)

	if len(report.Clusters) > 0 {
		b.WriteString("\n## Top Error Patterns\n\n")
		ranked := topClusters(report.Clusters, maxTopPatterns)
		for i, c := range ranked {
			fmt.Fprintf(&b, "%d. **(%dx)** %s\n", i+1, c.Count, firstLine(c.RepresentativeMessage))
		}
	}

	if len(report.Timeline.Events) > 0 {
		b.WriteString("\n## Error Timeline\n\n")
		for i := range report.Timeline.Events {
			if i >= maxTimelineEventsMarkdown {
				break
			}
			ev := &report.Timeline.Events[i]
			marker := ""
			if ev.IsCascadeTrigger {
				marker = " **(cascade trigger)**"
			}
			fmt.Fprintf(&b, "- `[%s]` %s%s\n", eventTime(ev), firstLine(ev.Description()), marker)
		}
	}

	b.WriteString("\n## Analysis\n\n")
	b.WriteString(findingMarkdown(report.Finding))

	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "*Report %s, analyzer: %s*\n", report.ID, report.Finding.Analyzer)

	return b.String()
}

// findingMarkdown renders the root-cause finding section.
func findingMarkdown(f *models.RootCauseFinding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Root cause** (%s confidence): %s\n", f.Confidence, f.Summary)

	if len(f.SuggestedFixes) > 0 {
		b.WriteString("\n**Suggested fixes:**\n\n")
		for i, fix := range f.SuggestedFixes {
			fmt.Fprintf(&b, "%d. %s\n", i+1, fix)
		}
	}

	if len(f.PreventionNotes) > 0 {
		b.WriteString("\n**Prevention:**\n\n")
		for _, note := range f.PreventionNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	if f.Truncated {
		b.WriteString("\n*Some error patterns were omitted to fit the size budget of the analysis input.*\n")
	}

	return b.String()
}

// topClusters returns up to n clusters ranked by count without
// reordering the input list.
func topClusters(clusters models.ClusterList, n int) models.ClusterList {
	ranked := append(models.ClusterList{}, clusters...)
	ranked.SortByCount()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func eventTime(ev *models.TimelineEvent) string {
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
