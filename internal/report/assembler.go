// Package report assembles the final analysis report and validates its
// internal consistency.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moolen/logtriage/internal/logging"
	"github.com/moolen/logtriage/internal/models"
)

// IntegrityError reports a finding that references a timeline event
// which does not exist. This is a programming error in the analyzer or
// the timeline builder, not a user input problem, and it is fatal to
// the run.
type IntegrityError struct {
	Index  int
	Events int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("finding evidence references timeline event %d, but the timeline has %d events",
		e.Index, e.Events)
}

// Assembler builds AnalysisReport values.
type Assembler struct {
	logger *logging.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler() *Assembler {
	return &Assembler{logger: logging.GetLogger("report")}
}

// Assemble aggregates the pipeline outputs into a report. Every
// evidence index in the finding must resolve to a timeline event;
// a dangling reference returns an IntegrityError.
func (a *Assembler) Assemble(entries []*models.LogEntry, totalLines int, tl *models.Timeline, clusters models.ClusterList, finding *models.RootCauseFinding) (*models.AnalysisReport, error) {
	for _, idx := range finding.Evidence {
		if tl.Event(idx) == nil {
			return nil, &IntegrityError{Index: idx, Events: len(tl.Events)}
		}
	}

	report := &models.AnalysisReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Summary:     summarize(entries, totalLines, clusters),
		Timeline:    tl,
		Clusters:    clusters,
		Finding:     finding,
	}

	a.logger.DebugWithFields("report assembled",
		logging.Field("id", report.ID),
		logging.Field("clusters", len(clusters)),
		logging.Field("events", len(tl.Events)),
	)
	return report, nil
}

// summarize computes the per-level counters for the report header.
func summarize(entries []*models.LogEntry, totalLines int, clusters models.ClusterList) models.Summary {
	s := models.Summary{
		TotalEntries: len(entries),
		TotalLines:   totalLines,
		LevelCounts:  make(map[string]int),
	}
	for _, e := range entries {
		s.LevelCounts[e.Level.String()]++
		if e.Level.IsError() {
			s.ErrorCount++
		}
	}
	s.UniqueErrors = len(clusters)
	return s
}
