package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := Default()
	assert.Equal(t, DefaultCascadeWindow, cfg.CascadeWindow)
	assert.Equal(t, DefaultPromptTokenBudget, cfg.PromptTokenBudget)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.False(t, cfg.AIEnabled, "AI should be disabled without a credential")
	require.NoError(t, cfg.Validate())
}

func TestDefaultConfigWithCredential(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg := Default()
	assert.True(t, cfg.AIEnabled, "AI should be enabled when a credential is present")
	assert.Equal(t, "sk-test", cfg.APIKey)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cascade window", func(c *Config) { c.CascadeWindow = 0 }},
		{"negative cascade window", func(c *Config) { c.CascadeWindow = -time.Second }},
		{"tiny token budget", func(c *Config) { c.PromptTokenBudget = 10 }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"ai enabled without key", func(c *Config) { c.AIEnabled = true; c.APIKey = "" }},
		{"missing rules file", func(c *Config) { c.RulesPath = "/nonexistent/rules.yaml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ANTHROPIC_API_KEY", "")
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logLevel: debug
cascadeWindow: 10s
promptTokenBudget: 2000
requestTimeout: 15s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.CascadeWindow)
	assert.Equal(t, 2000, cfg.PromptTokenBudget)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	// Untouched fields keep defaults
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestLoadFileInvalidValues(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cascadeWindow: -5s\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
}
