package models

// Confidence grades how much trust to place in a root-cause finding.
type Confidence string

const (
	// ConfidenceHigh for AI findings with a well-formed response and
	// strong cascade evidence
	ConfidenceHigh Confidence = "HIGH"
	// ConfidenceMedium for AI findings with partial evidence
	ConfidenceMedium Confidence = "MEDIUM"
	// ConfidenceLow for AI responses that did not match the expected
	// section format and were salvaged best-effort
	ConfidenceLow Confidence = "LOW"
	// ConfidenceFallback marks rule-based-only output
	ConfidenceFallback Confidence = "FALLBACK"
)

// RootCauseFinding is the outcome of root-cause inference.
type RootCauseFinding struct {
	// Summary is a short causal statement
	Summary string

	// Evidence holds indices into the owning Timeline's event sequence.
	// The Timeline remains sole owner of the events.
	Evidence []int

	// SuggestedFixes lists remediation steps in priority order
	SuggestedFixes []string

	// PreventionNotes lists longer-term prevention strategies
	PreventionNotes []string

	// Confidence grades the finding; FALLBACK means rule-based-only
	Confidence Confidence

	// Analyzer names the backend that produced the finding
	// (e.g. "anthropic", "rules")
	Analyzer string

	// Truncated is set when the prompt was cut to fit the token budget;
	// renderers surface the omission in the report output
	Truncated bool
}
