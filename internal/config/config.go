package config

import (
	"os"
	"time"

	"github.com/moolen/logtriage/internal/models"
)

// Default values applied when a field is not set via file or flags.
const (
	DefaultCascadeWindow     = models.DefaultCascadeWindow
	DefaultPromptTokenBudget = 4000
	DefaultModel             = "claude-sonnet-4-5-20250929"
	DefaultRequestTimeout    = 30 * time.Second
)

// Config holds all configuration for an analysis run.
type Config struct {
	// LogLevel is the logging level (debug, info, warn, error)
	LogLevel string `yaml:"logLevel"`

	// CascadeWindow is the time interval within which a lower-severity
	// event is considered a potential trigger for a following error cluster
	CascadeWindow time.Duration `yaml:"cascadeWindow"`

	// PromptTokenBudget bounds the size of the prompt sent to the
	// text-generation service. Clusters beyond the budget are dropped.
	PromptTokenBudget int `yaml:"promptTokenBudget"`

	// AIEnabled controls whether the AI-backed analyzer is attempted.
	// Defaults to true when an API key is present.
	AIEnabled bool `yaml:"aiEnabled"`

	// APIKey is the credential for the text-generation service.
	// Falls back to the ANTHROPIC_API_KEY environment variable.
	APIKey string `yaml:"apiKey"`

	// Model is the text-generation model identifier
	Model string `yaml:"model"`

	// RequestTimeout bounds the AI inference call. On timeout the
	// pipeline falls back to the rule-based analyzer.
	RequestTimeout time.Duration `yaml:"requestTimeout"`

	// RulesPath is an optional YAML rules pack extending the built-in
	// fallback heuristics
	RulesPath string `yaml:"rulesPath"`
}

// Default returns a Config populated with defaults. The API key is read
// from the environment; AI is enabled only when a credential is present.
func Default() *Config {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	return &Config{
		LogLevel:          "info",
		CascadeWindow:     DefaultCascadeWindow,
		PromptTokenBudget: DefaultPromptTokenBudget,
		AIEnabled:         apiKey != "",
		APIKey:            apiKey,
		Model:             DefaultModel,
		RequestTimeout:    DefaultRequestTimeout,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.CascadeWindow <= 0 {
		return NewConfigError("CascadeWindow must be positive")
	}

	if c.PromptTokenBudget < 256 {
		return NewConfigError("PromptTokenBudget must be at least 256 tokens")
	}

	if c.RequestTimeout <= 0 {
		return NewConfigError("RequestTimeout must be positive")
	}

	if c.AIEnabled && c.APIKey == "" {
		return NewConfigError("APIKey must be set when AI analysis is enabled")
	}

	if c.RulesPath != "" {
		if _, err := os.Stat(c.RulesPath); err != nil {
			return NewConfigError("RulesPath does not point to a readable file: " + c.RulesPath)
		}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return e.message
}
