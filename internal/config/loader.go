package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadFile loads configuration from a YAML file using Koanf, layered on
// top of the defaults. Fields not present in the file keep their default.
//
// Example YAML structure:
//
//	logLevel: info
//	cascadeWindow: 5s
//	promptTokenBudget: 4000
//	aiEnabled: true
//	model: claude-sonnet-4-5-20250929
//	requestTimeout: 30s
//	rulesPath: /etc/logtriage/rules.yaml
//
// Error cases:
//   - File not found or cannot be read
//   - Invalid YAML syntax
//   - Validation failure (non-positive window, missing credential, ...)
func LoadFile(filepath string) (*Config, error) {
	cfg := Default()

	k := koanf.New(".")
	if err := k.Load(file.Provider(filepath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config from %q: %w", filepath, err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("failed to parse config from %q: %w", filepath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed for %q: %w", filepath, err)
	}

	return cfg, nil
}
