// Package pipeline wires the analysis stages together: parse, cluster,
// timeline, root-cause inference, report assembly. Each run owns its
// data exclusively; no state is shared across concurrent runs.
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"github.com/moolen/logtriage/internal/config"
	"github.com/moolen/logtriage/internal/logging"
	"github.com/moolen/logtriage/internal/models"
	"github.com/moolen/logtriage/internal/parsing"
	"github.com/moolen/logtriage/internal/patterns"
	"github.com/moolen/logtriage/internal/report"
	"github.com/moolen/logtriage/internal/rootcause"
	"github.com/moolen/logtriage/internal/timeline"
)

// Pipeline runs a complete analysis over raw log lines.
type Pipeline struct {
	cfg       *config.Config
	parser    *parsing.Parser
	detector  *patterns.Detector
	builder   *timeline.Builder
	assembler *report.Assembler
	fallback  *rootcause.RuleAnalyzer
	generator rootcause.Generator
	logger    *logging.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithGenerator overrides the text-generation backend. Used in tests to
// inject a fake service.
func WithGenerator(gen rootcause.Generator) Option {
	return func(p *Pipeline) { p.generator = gen }
}

// New creates a Pipeline from the given configuration. The custom rules
// pack, when configured, is loaded here so a malformed pack fails fast
// instead of mid-run.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	custom, err := rootcause.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("loading rules pack: %w", err)
	}

	p := &Pipeline{
		cfg:       cfg,
		parser:    parsing.New(),
		detector:  patterns.NewDetector(),
		builder:   timeline.NewBuilder(cfg.CascadeWindow),
		assembler: report.NewAssembler(),
		fallback:  rootcause.NewRuleAnalyzer(custom),
		logger:    logging.GetLogger("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.generator == nil && cfg.AIEnabled && cfg.APIKey != "" {
		p.generator = rootcause.NewAnthropicGenerator(cfg.APIKey, cfg.Model)
	}

	return p, nil
}

// Run executes the analysis stages in order. The only stage that can
// block is the AI inference call; it is bounded by the configured
// timeout and falls back to the rule-based analyzer on any failure, so
// Run returns an error only for genuine programming errors surfaced by
// the report integrity check.
func (p *Pipeline) Run(ctx context.Context, lines []string) (*models.AnalysisReport, error) {
	entries, err := p.parser.ParseParallel(ctx, lines, runtime.NumCPU())
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	clusters := p.detector.Detect(entries)
	tl := p.builder.Build(entries, clusters)
	finding := p.infer(ctx, tl, clusters)

	rep, err := p.assembler.Assemble(entries, len(lines), tl, clusters, finding)
	if err != nil {
		return nil, err
	}

	p.logger.InfoWithFields("analysis complete",
		logging.Field("entries", len(entries)),
		logging.Field("clusters", len(clusters)),
		logging.Field("analyzer", finding.Analyzer),
		logging.Field("confidence", string(finding.Confidence)),
	)
	return rep, nil
}

// infer picks the analyzer. The AI-backed variant runs only when a
// generator is configured and there is something to analyze; any AI
// failure or timeout degrades to the rule-based analyzer, never to a
// pipeline error.
func (p *Pipeline) infer(ctx context.Context, tl *models.Timeline, clusters models.ClusterList) *models.RootCauseFinding {
	if p.generator != nil && len(clusters) > 0 {
		ai := rootcause.NewAIAnalyzer(p.generator, p.cfg.PromptTokenBudget, p.cfg.RequestTimeout)
		finding, err := ai.Infer(ctx, tl, clusters)
		if err == nil {
			return finding
		}
		p.logger.WarnWithFields("AI analysis failed, using rule-based fallback",
			logging.Field("error", err.Error()),
		)
	}

	// The rule-based analyzer cannot fail.
	finding, _ := p.fallback.Infer(ctx, tl, clusters)
	return finding
}
