package rootcause

import (
	"context"
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moolen/logtriage/internal/logging"
	"github.com/moolen/logtriage/internal/models"
)

// Rule maps a message vocabulary to a diagnosis. Rules are evaluated in
// order against the dominant cluster; the first match wins.
type Rule struct {
	ID         string   `yaml:"id"`
	Keywords   []string `yaml:"keywords"`
	Summary    string   `yaml:"summary"`
	Fixes      []string `yaml:"fixes"`
	Prevention string   `yaml:"prevention"`
}

// RuleFile is the YAML root structure for a custom rules pack.
type RuleFile struct {
	Rules []Rule `yaml:"rules"`
}

// builtinRules is the fixed heuristic priority list. Custom rules from
// a pack are evaluated before these.
var builtinRules = []Rule{
	{
		ID:       "connection-failure",
		Keywords: []string{"connection", "refused"},
		Summary:  "Network connectivity or service connection failure",
		Fixes: []string{
			"Check network connectivity between services",
			"Verify target service is running and accepting connections",
			"Review firewall rules and security groups",
		},
		Prevention: "Implement health checks, connection pooling, and retry logic with exponential backoff",
	},
	{
		ID:       "timeout",
		Keywords: []string{"timeout"},
		Summary:  "Service timeout, operations taking too long",
		Fixes: []string{
			"Increase timeout values in configuration",
			"Optimize slow database queries or API calls",
			"Add caching layer for frequently accessed data",
		},
		Prevention: "Set up performance monitoring and alerts for slow operations",
	},
	{
		ID:       "memory-exhaustion",
		Keywords: []string{"memory", "oom"},
		Summary:  "Memory exhaustion, possible memory leak",
		Fixes: []string{
			"Increase memory allocation for the service",
			"Review code for memory leaks",
			"Restart affected services",
		},
		Prevention: "Add memory monitoring, implement proper cleanup, and consider memory profiling",
	},
	{
		ID:       "permission-failure",
		Keywords: []string{"permission", "denied"},
		Summary:  "Permission or authentication failure",
		Fixes: []string{
			"Review and update service permissions",
			"Verify credentials are correct and not expired",
			"Check IAM roles and policies",
		},
		Prevention: "Implement proper credential rotation and access control management",
	},
}

// LoadRules reads a custom rules pack. A missing file is not an error;
// it simply yields no custom rules.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var file RuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return file.Rules, nil
}

// RuleAnalyzer is the deterministic fallback. It never blocks and never
// fails; every input yields a finding.
type RuleAnalyzer struct {
	rules  []Rule
	logger *logging.Logger
}

// NewRuleAnalyzer creates a RuleAnalyzer. Custom rules are evaluated
// before the built-in heuristics.
func NewRuleAnalyzer(custom []Rule) *RuleAnalyzer {
	rules := make([]Rule, 0, len(custom)+len(builtinRules))
	rules = append(rules, custom...)
	rules = append(rules, builtinRules...)
	return &RuleAnalyzer{
		rules:  rules,
		logger: logging.GetLogger("rootcause.rules"),
	}
}

// Name implements Analyzer.
func (a *RuleAnalyzer) Name() string { return "rules" }

// Infer applies the rule list to the dominant cluster. With no clusters
// at all the system is considered healthy; when no rule matches, a
// generic manual-review finding is emitted. Every finding from this
// analyzer carries FALLBACK confidence: the grade marks rule-based-only
// output, regardless of whether a vocabulary matched.
func (a *RuleAnalyzer) Infer(_ context.Context, tl *models.Timeline, clusters models.ClusterList) (*models.RootCauseFinding, error) {
	if len(clusters) == 0 {
		return &models.RootCauseFinding{
			Summary: "No errors detected in logs. System appears healthy.",
			SuggestedFixes: []string{
				"No action required",
				"Continue monitoring",
				"Review info/warning logs for potential issues",
			},
			PreventionNotes: []string{"Maintain current monitoring and alerting"},
			Confidence:      models.ConfidenceFallback,
			Analyzer:        a.Name(),
		}, nil
	}

	target := a.dominantCluster(tl, clusters)
	haystack := strings.ToLower(target.RepresentativeMessage)

	for _, rule := range a.rules {
		if matchesAny(haystack, rule.Keywords) {
			a.logger.DebugWithFields("rule matched",
				logging.Field("rule", rule.ID),
				logging.Field("cluster", target.ID),
			)
			return &models.RootCauseFinding{
				Summary:         rule.Summary,
				Evidence:        tl.Triggers(),
				SuggestedFixes:  rule.Fixes,
				PreventionNotes: []string{rule.Prevention},
				Confidence:      models.ConfidenceFallback,
				Analyzer:        a.Name(),
			}, nil
		}
	}

	return &models.RootCauseFinding{
		Summary:  "Multiple errors detected, manual review required",
		Evidence: tl.Triggers(),
		SuggestedFixes: []string{
			"Review the top error messages listed above",
			"Check service logs around the error timestamps",
			"Correlate with recent deployments or configuration changes",
		},
		PreventionNotes: []string{"Enhance logging, add monitoring alerts, and implement gradual rollouts"},
		Confidence:      models.ConfidenceFallback,
		Analyzer:        a.Name(),
	}, nil
}

// dominantCluster picks the rule evaluation target: the highest
// severity, earliest cascade-trigger cluster. When no trigger event
// wraps a cluster, the clusters ranked by severity stand in.
func (a *RuleAnalyzer) dominantCluster(tl *models.Timeline, clusters models.ClusterList) *models.ErrorCluster {
	var best *models.ErrorCluster
	for _, idx := range tl.Triggers() {
		ev := tl.Event(idx)
		if ev == nil || !ev.IsCluster() {
			continue
		}
		c := ev.Cluster
		if best == nil || c.Severity > best.Severity ||
			(c.Severity == best.Severity && c.FirstSeen.Before(best.FirstSeen)) {
			best = c
		}
	}
	if best != nil {
		return best
	}

	ranked := append(models.ClusterList{}, clusters...)
	ranked.SortBySeverity()
	return ranked[0]
}

func matchesAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
