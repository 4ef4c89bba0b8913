package rootcause

import (
	"context"
	"fmt"
	"time"

	"github.com/moolen/logtriage/internal/logging"
	"github.com/moolen/logtriage/internal/models"
)

// AIAnalyzer delegates inference to a text-generation service. The call
// is bounded by a timeout; callers fall back to the rule-based analyzer
// when Infer returns an error.
type AIAnalyzer struct {
	generator   Generator
	logger      *logging.Logger
	tokenBudget int
	timeout     time.Duration
}

// NewAIAnalyzer creates an AIAnalyzer around the given generator.
func NewAIAnalyzer(gen Generator, tokenBudget int, timeout time.Duration) *AIAnalyzer {
	return &AIAnalyzer{
		generator:   gen,
		logger:      logging.GetLogger("rootcause.ai"),
		tokenBudget: tokenBudget,
		timeout:     timeout,
	}
}

// Name implements Analyzer.
func (a *AIAnalyzer) Name() string { return "ai" }

// Infer serializes the incident into a bounded prompt, calls the
// generation service and parses the response into a finding. A response
// that does not follow the expected section format yields a LOW
// confidence finding rather than an error; transport failures and
// timeouts are returned as errors so the caller can fall back.
func (a *AIAnalyzer) Infer(ctx context.Context, tl *models.Timeline, clusters models.ClusterList) (*models.RootCauseFinding, error) {
	prompt := buildPrompt(tl, clusters, a.tokenBudget)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.generator.Generate(ctx, systemPrompt, prompt.text)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	parsed := parseSections(text)
	confidence := models.ConfidenceHigh
	if !parsed.matched {
		a.logger.Warn("generated analysis did not match the expected section format, downgrading confidence")
		confidence = models.ConfidenceLow
	}

	var prevention []string
	if parsed.prevention != "" {
		prevention = []string{parsed.prevention}
	}

	return &models.RootCauseFinding{
		Summary:         parsed.summary,
		Evidence:        tl.Triggers(),
		SuggestedFixes:  parsed.fixes,
		PreventionNotes: prevention,
		Confidence:      confidence,
		Analyzer:        a.Name(),
		Truncated:       prompt.truncated,
	}, nil
}
