// Package timeline reconstructs the chronological sequence of an
// incident from parsed entries and error clusters, and marks the events
// that likely set off the cascade.
package timeline

import (
	"sort"
	"time"

	"github.com/moolen/logtriage/internal/logging"
	"github.com/moolen/logtriage/internal/models"
)

// Builder assembles a Timeline from entries and clusters.
type Builder struct {
	logger *logging.Logger
	window time.Duration
}

// NewBuilder creates a Builder with the given cascade window. A zero or
// negative window falls back to the default.
func NewBuilder(window time.Duration) *Builder {
	if window <= 0 {
		window = models.DefaultCascadeWindow
	}
	return &Builder{
		logger: logging.GetLogger("timeline"),
		window: window,
	}
}

// candidate pairs an event with its file position so that events
// without usable timestamps can be ordered by position instead.
type candidate struct {
	event     models.TimelineEvent
	lineOrder int
	// sortTime is the effective chronological key. For events without a
	// timestamp, and for events flagged out-of-order, this is borrowed
	// from the nearest preceding anchored event in file order so the
	// event keeps its file position. Zero means no anchor exists.
	sortTime time.Time
}

// Build merges all cluster events with the WARN/INFO singletons that
// fall inside the cascade window before any cluster's first occurrence,
// sorts them chronologically, and flags cascade triggers.
//
// Events lacking a timestamp are positioned by file order relative to
// their timestamped neighbors; events with no timestamped neighbor at
// all go to the end, in file order. Out-of-order entries keep their
// file position and their flag, they are never resequenced.
func (b *Builder) Build(entries []*models.LogEntry, clusters models.ClusterList) *models.Timeline {
	cands := b.collect(entries, clusters)
	ordered := orderEvents(cands)

	tl := &models.Timeline{
		Events:        ordered,
		CascadeWindow: b.window,
	}
	b.markTriggers(tl)

	b.logger.DebugWithFields("timeline built",
		logging.Field("events", len(tl.Events)),
		logging.Field("triggers", len(tl.Triggers())),
	)
	return tl
}

// collect gathers one event per cluster plus the qualifying WARN/INFO
// singletons, each annotated with its file position.
func (b *Builder) collect(entries []*models.LogEntry, clusters models.ClusterList) []candidate {
	cands := make([]candidate, 0, len(clusters))

	for _, cluster := range clusters {
		first := cluster.Members[0]
		cands = append(cands, candidate{
			event: models.TimelineEvent{
				StartTime:  cluster.FirstSeen,
				Cluster:    cluster,
				Severity:   cluster.Severity,
				OutOfOrder: first.OutOfOrder,
			},
			lineOrder: first.LineNumber,
		})
	}

	for _, entry := range entries {
		if entry.Level != models.LevelWarn && entry.Level != models.LevelInfo {
			continue
		}
		if !entry.HasTimestamp() || !b.precedesCluster(entry, clusters) {
			continue
		}
		cands = append(cands, candidate{
			event: models.TimelineEvent{
				StartTime:  entry.Timestamp,
				Entry:      entry,
				Severity:   entry.Level,
				OutOfOrder: entry.OutOfOrder,
			},
			lineOrder: entry.LineNumber,
		})
	}

	return cands
}

// precedesCluster reports whether the entry falls inside the cascade
// window before the first occurrence of any cluster.
func (b *Builder) precedesCluster(entry *models.LogEntry, clusters models.ClusterList) bool {
	for _, cluster := range clusters {
		if cluster.FirstSeen.IsZero() {
			continue
		}
		gap := cluster.FirstSeen.Sub(entry.Timestamp)
		if gap >= 0 && gap <= b.window {
			return true
		}
	}
	return false
}

// orderEvents sorts candidates chronologically. Events without a usable
// timestamp borrow the time of the nearest preceding anchored event in
// file order; events with no anchor go to the end.
func orderEvents(cands []candidate) []models.TimelineEvent {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].lineOrder < cands[j].lineOrder
	})

	var lastAnchor time.Time
	for i := range cands {
		c := &cands[i]
		if !c.event.StartTime.IsZero() && !c.event.OutOfOrder {
			lastAnchor = c.event.StartTime
			c.sortTime = c.event.StartTime
			continue
		}
		c.sortTime = lastAnchor
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		switch {
		case a.sortTime.IsZero() && b.sortTime.IsZero():
			return a.lineOrder < b.lineOrder
		case a.sortTime.IsZero():
			return false
		case b.sortTime.IsZero():
			return true
		case !a.sortTime.Equal(b.sortTime):
			return a.sortTime.Before(b.sortTime)
		default:
			return a.lineOrder < b.lineOrder
		}
	})

	events := make([]models.TimelineEvent, len(cands))
	for i, c := range cands {
		events[i] = c.event
	}
	return events
}

// markTriggers sets IsCascadeTrigger on the earliest event and on every
// event that strictly precedes a higher-or-equal severity event within
// the cascade window.
func (b *Builder) markTriggers(tl *models.Timeline) {
	if len(tl.Events) == 0 {
		return
	}
	tl.Events[0].IsCascadeTrigger = true

	for i := range tl.Events {
		ev := &tl.Events[i]
		if ev.StartTime.IsZero() {
			continue
		}
		for j := range tl.Events {
			if i == j {
				continue
			}
			other := &tl.Events[j]
			if other.StartTime.IsZero() {
				continue
			}
			gap := other.StartTime.Sub(ev.StartTime)
			if gap > 0 && gap <= b.window && other.Severity >= ev.Severity {
				ev.IsCascadeTrigger = true
				break
			}
		}
	}
}
