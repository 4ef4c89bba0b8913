package models

import "time"

// DefaultCascadeWindow is the interval within which a lower-severity
// event counts as a potential trigger for a following error.
const DefaultCascadeWindow = 5 * time.Second

// TimelineEvent is a single event on the incident timeline: either a
// singleton log entry or an error cluster.
type TimelineEvent struct {
	// StartTime is the event's position in time. For clusters this is
	// the first member's timestamp. Zero when no timestamp is known
	// anywhere near the event (such events sort to the end).
	StartTime time.Time

	// Entry is set for singleton events, nil for cluster events
	Entry *LogEntry

	// Cluster is set for cluster events, nil for singletons
	Cluster *ErrorCluster

	// Severity is the entry's level or the cluster's severity
	Severity Level

	// IsCascadeTrigger marks the earliest event overall and any event
	// that strictly precedes a higher-or-equal severity event within the
	// cascade window ("first domino" detection)
	IsCascadeTrigger bool

	// OutOfOrder is carried over from the underlying entry when its
	// timestamp went backward relative to file order
	OutOfOrder bool
}

// IsCluster reports whether the event wraps an error cluster.
func (e *TimelineEvent) IsCluster() bool {
	return e.Cluster != nil
}

// Description returns a short human-readable label for the event.
func (e *TimelineEvent) Description() string {
	if e.Cluster != nil {
		return e.Cluster.RepresentativeMessage
	}
	if e.Entry != nil {
		return e.Entry.Message
	}
	return ""
}

// Timeline is the chronologically ordered sequence of events for one
// analysis run. It is the sole owner of its events; findings reference
// them by index.
type Timeline struct {
	// Events in non-decreasing StartTime order, except events flagged
	// OutOfOrder which keep their file-order position, and events with
	// no timestamp which are placed at the end in file order
	Events []TimelineEvent

	// CascadeWindow is the window that was used for trigger detection
	CascadeWindow time.Duration
}

// Event returns the event at index i, or nil if the index is out of range.
func (t *Timeline) Event(i int) *TimelineEvent {
	if i < 0 || i >= len(t.Events) {
		return nil
	}
	return &t.Events[i]
}

// Triggers returns the indices of all cascade-trigger events.
func (t *Timeline) Triggers() []int {
	var out []int
	for i := range t.Events {
		if t.Events[i].IsCascadeTrigger {
			out = append(out, i)
		}
	}
	return out
}
