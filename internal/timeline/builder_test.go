package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moolen/logtriage/internal/models"
)

var base = time.Date(2024, 1, 15, 10, 5, 30, 0, time.UTC)

func newEntry(level models.Level, msg string, ts time.Time, line int) *models.LogEntry {
	return &models.LogEntry{Level: level, Message: msg, RawLine: msg, Timestamp: ts, LineNumber: line}
}

func newCluster(members ...*models.LogEntry) *models.ErrorCluster {
	c := &models.ErrorCluster{
		NormalizedKey:         members[0].Message,
		RepresentativeMessage: members[0].Message,
		Members:               members,
		Count:                 len(members),
		Severity:              members[0].Level,
	}
	for _, m := range members {
		if m.Level > c.Severity {
			c.Severity = m.Level
		}
		if m.HasTimestamp() {
			if c.FirstSeen.IsZero() || m.Timestamp.Before(c.FirstSeen) {
				c.FirstSeen = m.Timestamp
			}
			if m.Timestamp.After(c.LastSeen) {
				c.LastSeen = m.Timestamp
			}
		}
	}
	return c
}

func TestBuild_ChronologicalOrder(t *testing.T) {
	e1 := newEntry(models.LevelError, "db down", base.Add(2*time.Second), 2)
	e2 := newEntry(models.LevelError, "api failed", base, 1)
	clusters := models.ClusterList{newCluster(e1), newCluster(e2)}

	tl := NewBuilder(0).Build([]*models.LogEntry{e2, e1}, clusters)
	require.Len(t, tl.Events, 2)
	assert.Equal(t, "api failed", tl.Events[0].Description())
	assert.Equal(t, "db down", tl.Events[1].Description())
	assert.Equal(t, models.DefaultCascadeWindow, tl.CascadeWindow)
}

func TestBuild_FirstEventIsTrigger(t *testing.T) {
	e1 := newEntry(models.LevelError, "Connection timeout to database", base, 1)
	e2 := newEntry(models.LevelError, "Failed to process user request", base.Add(time.Second), 2)
	e3 := newEntry(models.LevelError, "API returned 500", base.Add(2*time.Second), 3)
	clusters := models.ClusterList{newCluster(e1), newCluster(e2), newCluster(e3)}

	tl := NewBuilder(5 * time.Second).Build([]*models.LogEntry{e1, e2, e3}, clusters)
	require.Len(t, tl.Events, 3)
	assert.True(t, tl.Events[0].IsCascadeTrigger, "earliest event must be a trigger")
	assert.False(t, tl.Events[2].IsCascadeTrigger, "last event precedes nothing")
}

func TestBuild_WarnSingletonInsideWindowIncluded(t *testing.T) {
	warn := newEntry(models.LevelWarn, "connection pool exhausted", base, 1)
	err := newEntry(models.LevelError, "query failed", base.Add(3*time.Second), 2)
	clusters := models.ClusterList{newCluster(err)}

	tl := NewBuilder(5 * time.Second).Build([]*models.LogEntry{warn, err}, clusters)
	require.Len(t, tl.Events, 2)

	first := tl.Events[0]
	assert.False(t, first.IsCluster())
	assert.Equal(t, "connection pool exhausted", first.Description())
	assert.True(t, first.IsCascadeTrigger,
		"lower severity event strictly preceding an error within the window is a trigger")
}

func TestBuild_WarnSingletonOutsideWindowDropped(t *testing.T) {
	warn := newEntry(models.LevelWarn, "old warning", base, 1)
	err := newEntry(models.LevelError, "query failed", base.Add(30*time.Second), 2)
	clusters := models.ClusterList{newCluster(err)}

	tl := NewBuilder(5 * time.Second).Build([]*models.LogEntry{warn, err}, clusters)
	require.Len(t, tl.Events, 1)
	assert.True(t, tl.Events[0].IsCluster())
}

func TestBuild_DebugNeverIncluded(t *testing.T) {
	dbg := newEntry(models.LevelDebug, "verbose detail", base, 1)
	err := newEntry(models.LevelError, "boom", base.Add(time.Second), 2)
	clusters := models.ClusterList{newCluster(err)}

	tl := NewBuilder(5 * time.Second).Build([]*models.LogEntry{dbg, err}, clusters)
	require.Len(t, tl.Events, 1)
}

func TestBuild_MissingTimestampInterpolatedByPosition(t *testing.T) {
	e1 := newEntry(models.LevelError, "first", base, 1)
	e2 := newEntry(models.LevelError, "no timestamp", time.Time{}, 2)
	e3 := newEntry(models.LevelError, "third", base.Add(2*time.Second), 3)
	clusters := models.ClusterList{newCluster(e1), newCluster(e2), newCluster(e3)}

	tl := NewBuilder(5 * time.Second).Build([]*models.LogEntry{e1, e2, e3}, clusters)
	require.Len(t, tl.Events, 3)
	assert.Equal(t, "first", tl.Events[0].Description())
	assert.Equal(t, "no timestamp", tl.Events[1].Description(),
		"timestamp-less event keeps its file position between anchored neighbors")
	assert.Equal(t, "third", tl.Events[2].Description())
}

func TestBuild_UnanchoredEventsAtEnd(t *testing.T) {
	e1 := newEntry(models.LevelError, "unanchored one", time.Time{}, 1)
	e2 := newEntry(models.LevelError, "unanchored two", time.Time{}, 2)
	e3 := newEntry(models.LevelError, "anchored", base, 3)
	clusters := models.ClusterList{newCluster(e1), newCluster(e2), newCluster(e3)}

	tl := NewBuilder(5 * time.Second).Build([]*models.LogEntry{e1, e2, e3}, clusters)
	require.Len(t, tl.Events, 3)
	assert.Equal(t, "anchored", tl.Events[0].Description())
	assert.Equal(t, "unanchored one", tl.Events[1].Description())
	assert.Equal(t, "unanchored two", tl.Events[2].Description(),
		"events with no timestamped neighbor go to the end in file order")
}

func TestBuild_OutOfOrderKeepsFilePosition(t *testing.T) {
	e1 := newEntry(models.LevelError, "first", base, 1)
	e2 := newEntry(models.LevelError, "backward clock", base.Add(-time.Hour), 2)
	e2.OutOfOrder = true
	e3 := newEntry(models.LevelError, "third", base.Add(time.Second), 3)
	clusters := models.ClusterList{newCluster(e1), newCluster(e2), newCluster(e3)}

	tl := NewBuilder(5 * time.Second).Build([]*models.LogEntry{e1, e2, e3}, clusters)
	require.Len(t, tl.Events, 3)
	assert.Equal(t, "backward clock", tl.Events[1].Description(),
		"out-of-order events are flagged, not resequenced")
	assert.True(t, tl.Events[1].OutOfOrder)
}

func TestBuild_TriggerRequiresStrictPrecedence(t *testing.T) {
	e1 := newEntry(models.LevelError, "simultaneous a", base, 1)
	e2 := newEntry(models.LevelError, "simultaneous b", base, 2)
	clusters := models.ClusterList{newCluster(e1), newCluster(e2)}

	tl := NewBuilder(5 * time.Second).Build([]*models.LogEntry{e1, e2}, clusters)
	require.Len(t, tl.Events, 2)
	assert.True(t, tl.Events[0].IsCascadeTrigger, "earliest event is always a trigger")
	assert.False(t, tl.Events[1].IsCascadeTrigger,
		"equal timestamps do not satisfy strict precedence")
}

func TestBuild_LowerSeverityLaterEventIsNotATriggerTarget(t *testing.T) {
	crit := newEntry(models.LevelCritical, "kernel panic", base, 1)
	warnSrc := newEntry(models.LevelError, "late minor error", base.Add(2*time.Second), 2)
	clusters := models.ClusterList{newCluster(crit), newCluster(warnSrc)}

	tl := NewBuilder(5 * time.Second).Build([]*models.LogEntry{crit, warnSrc}, clusters)
	require.Len(t, tl.Events, 2)
	// CRITICAL followed only by a lower-severity ERROR: trigger status
	// comes solely from being the earliest event.
	assert.True(t, tl.Events[0].IsCascadeTrigger)
	assert.False(t, tl.Events[1].IsCascadeTrigger)
}

func TestBuild_Empty(t *testing.T) {
	tl := NewBuilder(5 * time.Second).Build(nil, nil)
	assert.Empty(t, tl.Events)
	assert.Empty(t, tl.Triggers())
}
