// Package rootcause infers the probable root cause of an incident from
// the reconstructed timeline and error clusters.
//
// Two analyzer variants exist: an AI-backed one that delegates to an
// external text-generation service, and a deterministic rule-based one
// used when no credential is configured or the service call fails. Both
// produce a RootCauseFinding whose evidence references timeline events
// by index.
package rootcause

import (
	"context"

	"github.com/moolen/logtriage/internal/models"
)

// Analyzer produces a root-cause finding from a timeline and clusters.
type Analyzer interface {
	// Infer analyzes the incident. Implementations must honor ctx
	// cancellation; the rule-based variant never blocks.
	Infer(ctx context.Context, tl *models.Timeline, clusters models.ClusterList) (*models.RootCauseFinding, error)

	// Name identifies the analyzer variant in findings and logs.
	Name() string
}

// Generator is the black-box text-generation capability the AI-backed
// analyzer delegates to. It may fail or time out.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
