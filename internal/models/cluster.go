package models

import (
	"sort"
	"time"
)

// ErrorCluster groups log entries whose messages are identical after
// normalization (volatile tokens masked). Only ERROR and CRITICAL entries
// are clustered.
type ErrorCluster struct {
	// ID is a stable SHA-256 hash (hex-encoded) of the normalized key,
	// consistent across runs over the same input
	ID string

	// NormalizedKey is the masked, case-folded message the cluster
	// groups by
	NormalizedKey string

	// RepresentativeMessage is the raw (non-normalized) message of the
	// first member, used for display
	RepresentativeMessage string

	// Members holds the member entries in first-seen order
	Members []*LogEntry

	// Count is the number of member entries
	Count int

	// FirstSeen is the earliest member timestamp. Zero if no member
	// carries a timestamp.
	FirstSeen time.Time

	// LastSeen is the latest member timestamp
	LastSeen time.Time

	// Severity is the maximum level among members (CRITICAL > ERROR)
	Severity Level
}

// ClusterList is a collection of clusters with helper methods.
type ClusterList []*ErrorCluster

// TotalCount sums the member counts of all clusters.
func (cl ClusterList) TotalCount() int {
	total := 0
	for _, c := range cl {
		total += c.Count
	}
	return total
}

// SortByCount sorts clusters in descending order by occurrence count,
// breaking ties by first-seen order. Used for ranking clusters for
// display and prompt construction (most common patterns first).
func (cl ClusterList) SortByCount() {
	sort.SliceStable(cl, func(i, j int) bool {
		return cl[i].Count > cl[j].Count
	})
}

// SortBySeverity sorts clusters by severity descending, then count
// descending. Used to pick the dominant cluster for rule evaluation.
func (cl ClusterList) SortBySeverity() {
	sort.SliceStable(cl, func(i, j int) bool {
		if cl[i].Severity != cl[j].Severity {
			return cl[i].Severity > cl[j].Severity
		}
		return cl[i].Count > cl[j].Count
	})
}
