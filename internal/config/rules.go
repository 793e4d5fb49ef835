package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Vovarama1992/divinaci-bridge/internal/guard"
	"github.com/Vovarama1992/divinaci-bridge/internal/obfuscate"
)

var ErrInvalidRules = errors.New("invalid rules file")

// Rules extends the built-in guardrail and protected-term tables.
type Rules struct {
	Guardrails     []guard.PatternDef `yaml:"guardrails"`
	ProtectedTerms []obfuscate.Term   `yaml:"protected_terms"`
}

// LoadRules reads the rules file at path. An empty path yields empty rules.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return Rules{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidRules, path, err)
	}

	for i, g := range rules.Guardrails {
		if g.ID == "" {
			return Rules{}, fmt.Errorf("%w: guardrails[%d]: id is required", ErrInvalidRules, i)
		}
		if g.Regex == "" {
			return Rules{}, fmt.Errorf("%w: guardrails[%d]: regex is required", ErrInvalidRules, i)
		}
	}
	for i, t := range rules.ProtectedTerms {
		if t.Term == "" || t.Substitute == "" {
			return Rules{}, fmt.Errorf("%w: protected_terms[%d]: term and substitute are required", ErrInvalidRules, i)
		}
	}

	return rules, nil
}
