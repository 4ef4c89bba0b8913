package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/moolen/logtriage/internal/models"
)

// maxTimelineEventsTerminal bounds the timeline section on screen.
const maxTimelineEventsTerminal = 5

// Terminal renders the report for interactive display, styled with
// lipgloss. The analysis section goes through a markdown renderer so
// emphasis and lists come out readable on a terminal.
func Terminal(report *models.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Log Analysis Report"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %d\n", labelStyle.Render("Total Entries:"), report.Summary.TotalEntries)
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Error Count:"),
		errorCountStyle.Render(fmt.Sprintf("%d", report.Summary.ErrorCount)))
	fmt.Fprintf(&b, "  %s %d\n", labelStyle.Render("Unique Errors:"), report.Summary.UniqueErrors)
	b.WriteString("\n")

	if len(report.Clusters) > 0 {
		b.WriteString(sectionStyle.Render("Top Error Patterns"))
		b.WriteString("\n")
		for i, c := range topClusters(report.Clusters, maxTopPatterns) {
			fmt.Fprintf(&b, "  %d. (%dx) %s\n", i+1, c.Count, truncateText(firstLine(c.RepresentativeMessage), 80))
		}
		b.WriteString("\n")
	}

	if len(report.Timeline.Events) > 0 {
		b.WriteString(sectionStyle.Render("Error Timeline"))
		b.WriteString("\n")
		for i := range report.Timeline.Events {
			if i >= maxTimelineEventsTerminal {
				b.WriteString(mutedStyle.Render(
					fmt.Sprintf("  ... %d more events", len(report.Timeline.Events)-i)))
				b.WriteString("\n")
				break
			}
			ev := &report.Timeline.Events[i]
			line := fmt.Sprintf("  [%s] %s", eventTime(ev), truncateText(firstLine(ev.Description()), 80))
			if ev.IsCascadeTrigger {
				line += " " + triggerStyle.Render("<- cascade trigger")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(analysisPanelStyle.Render(renderAnalysis(report.Finding)))
	b.WriteString("\n")

	return b.String()
}

// renderAnalysis renders the finding through glamour, falling back to
// the raw markdown when the renderer cannot be constructed (e.g. no
// usable terminal profile).
func renderAnalysis(f *models.RootCauseFinding) string {
	md := findingMarkdown(f)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(96),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
