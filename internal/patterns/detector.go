// Package patterns groups error entries into clusters of recurring
// messages. Clustering is exact-match over a normalized message key, so
// a single map pass handles arbitrarily many entries and the grouping is
// fully deterministic.
package patterns

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/moolen/logtriage/internal/logging"
	"github.com/moolen/logtriage/internal/models"
)

// normalizeCacheSize bounds the memoized Normalize results. Large log
// files repeat the same raw messages heavily, so a small cache absorbs
// most of the regex cost.
const normalizeCacheSize = 4096

// Detector clusters ERROR and CRITICAL entries by normalized message.
type Detector struct {
	logger *logging.Logger
	cache  *lru.Cache[string, string]
}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	// Size is a constant > 0, the constructor cannot fail.
	cache, _ := lru.New[string, string](normalizeCacheSize)
	return &Detector{
		logger: logging.GetLogger("patterns"),
		cache:  cache,
	}
}

// Detect partitions every ERROR and CRITICAL entry into exactly one
// cluster, keyed by the normalized message. Entries below ERROR are
// ignored. Single-occurrence clusters are kept: a message seen once can
// still be the root cause.
//
// Clusters come back sorted by descending count; ties keep first-seen
// file order, so repeated runs over the same input yield the same list.
func (d *Detector) Detect(entries []*models.LogEntry) models.ClusterList {
	byKey := make(map[string]*models.ErrorCluster)
	var order []string

	for _, entry := range entries {
		if !entry.Level.IsError() {
			continue
		}

		key := d.normalize(entry.Message)
		cluster, ok := byKey[key]
		if !ok {
			cluster = &models.ErrorCluster{
				ID:                    ClusterID(key),
				NormalizedKey:         key,
				RepresentativeMessage: entry.Message,
				Severity:              entry.Level,
			}
			byKey[key] = cluster
			order = append(order, key)
		}

		cluster.Members = append(cluster.Members, entry)
		cluster.Count++
		if entry.Level > cluster.Severity {
			cluster.Severity = entry.Level
		}
		if entry.HasTimestamp() {
			if cluster.FirstSeen.IsZero() || entry.Timestamp.Before(cluster.FirstSeen) {
				cluster.FirstSeen = entry.Timestamp
			}
			if entry.Timestamp.After(cluster.LastSeen) {
				cluster.LastSeen = entry.Timestamp
			}
		}
	}

	clusters := make(models.ClusterList, 0, len(order))
	for _, key := range order {
		clusters = append(clusters, byKey[key])
	}
	clusters.SortByCount()

	d.logger.DebugWithFields("clustering complete",
		logging.Field("entries", len(entries)),
		logging.Field("clusters", len(clusters)),
	)
	return clusters
}

// normalize memoizes Normalize per raw message.
func (d *Detector) normalize(message string) string {
	if key, ok := d.cache.Get(message); ok {
		return key
	}
	key := Normalize(message)
	d.cache.Add(message, key)
	return key
}

// ClusterID creates a stable SHA-256 hash for a normalized key. The ID
// is deterministic across runs so clusters can be referenced from
// reports and compared between analyses of the same file.
func ClusterID(normalizedKey string) string {
	hash := sha256.Sum256([]byte(normalizedKey))
	return hex.EncodeToString(hash[:])
}
