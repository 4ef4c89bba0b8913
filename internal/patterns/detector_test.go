package patterns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moolen/logtriage/internal/models"
)

func entry(level models.Level, msg string, ts time.Time) *models.LogEntry {
	return &models.LogEntry{Level: level, Message: msg, RawLine: msg, Timestamp: ts}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "IP address masked",
			input:    "connection refused from 192.168.1.100",
			expected: "connection refused from <ip>",
		},
		{
			name:     "UUID masked",
			input:    "request 550e8400-e29b-41d4-a716-446655440000 failed",
			expected: "request <uuid> failed",
		},
		{
			name:     "embedded timestamp masked",
			input:    "token expired at 2024-01-15T10:05:30Z",
			expected: "token expired at <timestamp>",
		},
		{
			name:     "file path masked",
			input:    "cannot open /var/log/app.log",
			expected: "cannot open <path>",
		},
		{
			name:     "generic number masked",
			input:    "failed after 17 retries",
			expected: "failed after <num> retries",
		},
		{
			name:     "http status code preserved",
			input:    "API returned 500",
			expected: "api returned 500",
		},
		{
			name:     "status keyword preserves code",
			input:    "upstream status 503 from gateway",
			expected: "upstream status 503 from gateway",
		},
		{
			name:     "url masked",
			input:    "GET https://api.example.com/v1/users failed",
			expected: "get <url> failed",
		},
		{
			name:     "case folded",
			input:    "Connection Timeout to database",
			expected: "connection timeout to database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"connection refused from 192.168.1.100 after 17 retries",
		"cannot open /var/log/app.log at 2024-01-15T10:05:30Z",
		"API returned 500",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}

func TestDetect_GroupsByNormalizedMessage(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 5, 30, 0, time.UTC)
	entries := []*models.LogEntry{
		entry(models.LevelError, "Connection timeout to 10.0.0.1", base),
		entry(models.LevelError, "Connection timeout to 10.0.0.2", base.Add(2*time.Second)),
		entry(models.LevelError, "Connection timeout to 10.0.0.3", base.Add(4*time.Second)),
		entry(models.LevelError, "disk full on /dev/sda1", base.Add(time.Second)),
		entry(models.LevelInfo, "Connection timeout to 10.0.0.4", base),
	}

	clusters := NewDetector().Detect(entries)
	require.Len(t, clusters, 2)

	// Sorted by descending count
	timeouts := clusters[0]
	assert.Equal(t, 3, timeouts.Count)
	assert.Equal(t, "connection timeout to <ip>", timeouts.NormalizedKey)
	assert.Equal(t, "Connection timeout to 10.0.0.1", timeouts.RepresentativeMessage,
		"representative must be the first member's message")
	assert.Equal(t, base, timeouts.FirstSeen)
	assert.Equal(t, base.Add(4*time.Second), timeouts.LastSeen)

	assert.Equal(t, 1, clusters[1].Count, "singleton clusters are kept")
}

func TestDetect_CaseVariantsShareACluster(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 5, 30, 0, time.UTC)
	entries := []*models.LogEntry{
		entry(models.LevelError, "Connection Timeout to database", base),
		entry(models.LevelError, "connection timeout to database", base.Add(time.Second)),
	}

	clusters := NewDetector().Detect(entries)
	require.Len(t, clusters, 1)
	assert.Equal(t, 2, clusters[0].Count)
	assert.Equal(t, "Connection Timeout to database", clusters[0].RepresentativeMessage)
}

func TestDetect_EveryErrorInExactlyOneCluster(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	entries := []*models.LogEntry{
		entry(models.LevelError, "a failed", base),
		entry(models.LevelCritical, "b crashed", base),
		entry(models.LevelWarn, "c slow", base),
		entry(models.LevelError, "a failed", base),
		entry(models.LevelDebug, "noise", base),
	}

	clusters := NewDetector().Detect(entries)

	total := 0
	seen := map[*models.LogEntry]int{}
	for _, c := range clusters {
		total += c.Count
		assert.Len(t, c.Members, c.Count)
		for _, m := range c.Members {
			seen[m]++
		}
	}
	assert.Equal(t, 3, total, "only ERROR and CRITICAL entries are clustered")
	for e, n := range seen {
		assert.Equal(t, 1, n, "entry %q assigned to %d clusters", e.Message, n)
	}
}

func TestDetect_SeverityIsMaxMemberLevel(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	entries := []*models.LogEntry{
		entry(models.LevelError, "worker died", base),
		entry(models.LevelCritical, "worker died", base.Add(time.Second)),
	}

	clusters := NewDetector().Detect(entries)
	require.Len(t, clusters, 1)
	assert.Equal(t, models.LevelCritical, clusters[0].Severity)
}

func TestDetect_Deterministic(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	var entries []*models.LogEntry
	msgs := []string{"alpha failed", "beta failed", "gamma failed"}
	for i := 0; i < 30; i++ {
		entries = append(entries, entry(models.LevelError, msgs[i%3], base))
	}

	first := NewDetector().Detect(entries)
	second := NewDetector().Detect(entries)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Count, second[i].Count)
	}
}

func TestDetect_Empty(t *testing.T) {
	clusters := NewDetector().Detect(nil)
	assert.Empty(t, clusters)
}

func TestClusterID_Stable(t *testing.T) {
	a := ClusterID("connection timeout to <IP>")
	b := ClusterID("connection timeout to <IP>")
	c := ClusterID("disk full on <PATH>")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
