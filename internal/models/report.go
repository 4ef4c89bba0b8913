package models

import "time"

// Summary aggregates per-run counters for display.
type Summary struct {
	// TotalEntries is the number of parsed log entries
	TotalEntries int `json:"totalEntries"`

	// TotalLines is the number of input lines, including continuation
	// lines that were absorbed into entries
	TotalLines int `json:"totalLines"`

	// LevelCounts maps level name to entry count
	LevelCounts map[string]int `json:"levelCounts"`

	// ErrorCount is the number of ERROR/CRITICAL entries
	ErrorCount int `json:"errorCount"`

	// UniqueErrors is the number of distinct error clusters
	UniqueErrors int `json:"uniqueErrors"`
}

// AnalysisReport is the immutable top-level aggregate produced once per
// analysis run. It owns the timeline, the cluster set and the finding.
type AnalysisReport struct {
	// ID uniquely identifies the analysis run
	ID string `json:"id"`

	// GeneratedAt is the report creation time (UTC)
	GeneratedAt time.Time `json:"generatedAt"`

	// Summary holds per-run counters
	Summary Summary `json:"summary"`

	// Timeline is the reconstructed incident timeline
	Timeline *Timeline `json:"-"`

	// Clusters holds all error clusters, sorted by count descending
	Clusters ClusterList `json:"-"`

	// Finding is the root-cause analysis outcome
	Finding *RootCauseFinding `json:"-"`
}
