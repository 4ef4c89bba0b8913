package render

import (
	"encoding/json"
	"time"

	"github.com/moolen/logtriage/internal/models"
)

// reportView is the stable JSON shape of a report. Internal pointers
// (cluster members, timeline back-references) are flattened so the
// output is self-contained.
type reportView struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Summary     models.Summary `json:"summary"`
	Clusters    []clusterView  `json:"clusters"`
	Timeline    []eventView    `json:"timeline"`
	Finding     findingView    `json:"finding"`
}

type clusterView struct {
	ID                    string    `json:"id"`
	NormalizedKey         string    `json:"normalizedKey"`
	RepresentativeMessage string    `json:"representativeMessage"`
	Count                 int       `json:"count"`
	FirstSeen             time.Time `json:"firstSeen,omitzero"`
	LastSeen              time.Time `json:"lastSeen,omitzero"`
	Severity              string    `json:"severity"`
}

type eventView struct {
	StartTime        time.Time `json:"startTime,omitzero"`
	Description      string    `json:"description"`
	Severity         string    `json:"severity"`
	ClusterID        string    `json:"clusterId,omitempty"`
	IsCascadeTrigger bool      `json:"isCascadeTrigger"`
	OutOfOrder       bool      `json:"outOfOrder"`
}

type findingView struct {
	Summary         string   `json:"summary"`
	Evidence        []int    `json:"evidence"`
	SuggestedFixes  []string `json:"suggestedFixes"`
	PreventionNotes []string `json:"preventionNotes"`
	Confidence      string   `json:"confidence"`
	Analyzer        string   `json:"analyzer"`
	Truncated       bool     `json:"truncated"`
}

// JSON renders the report as indented JSON.
func JSON(report *models.AnalysisReport) ([]byte, error) {
	view := reportView{
		ID:          report.ID,
		GeneratedAt: report.GeneratedAt,
		Summary:     report.Summary,
		Clusters:    make([]clusterView, 0, len(report.Clusters)),
		Timeline:    make([]eventView, 0, len(report.Timeline.Events)),
		Finding: findingView{
			Summary:         report.Finding.Summary,
			Evidence:        report.Finding.Evidence,
			SuggestedFixes:  report.Finding.SuggestedFixes,
			PreventionNotes: report.Finding.PreventionNotes,
			Confidence:      string(report.Finding.Confidence),
			Analyzer:        report.Finding.Analyzer,
			Truncated:       report.Finding.Truncated,
		},
	}

	for _, c := range report.Clusters {
		view.Clusters = append(view.Clusters, clusterView{
			ID:                    c.ID,
			NormalizedKey:         c.NormalizedKey,
			RepresentativeMessage: c.RepresentativeMessage,
			Count:                 c.Count,
			FirstSeen:             c.FirstSeen,
			LastSeen:              c.LastSeen,
			Severity:              c.Severity.String(),
		})
	}

	for i := range report.Timeline.Events {
		ev := &report.Timeline.Events[i]
		ve := eventView{
			StartTime:        ev.StartTime,
			Description:      ev.Description(),
			Severity:         ev.Severity.String(),
			IsCascadeTrigger: ev.IsCascadeTrigger,
			OutOfOrder:       ev.OutOfOrder,
		}
		if ev.IsCluster() {
			ve.ClusterID = ev.Cluster.ID
		}
		view.Timeline = append(view.Timeline, ve)
	}

	return json.MarshalIndent(view, "", "  ")
}
