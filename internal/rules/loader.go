package rules

import (
	"fmt"
	"os"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
	"gopkg.in/yaml.v3"
)

type ruleFile struct {
	Rules []domain.Rule `yaml:"rules"`
}

// LoadFile reads a YAML rule set of the form `rules: [...]` and validates it.
func LoadFile(path string) ([]domain.Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML rule set and validates it.
func Parse(raw []byte) ([]domain.Rule, error) {
	var doc ruleFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if err := Validate(doc.Rules); err != nil {
		return nil, err
	}
	return doc.Rules, nil
}
