package category

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/paisatrail/paisatrail/internal/model"
)

//go:embed defaults.yaml
var defaultRulesYAML []byte

type ruleSpec struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
	Priority int    `yaml:"priority"`
	IsRegex  bool   `yaml:"is_regex"`
}

type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

// DefaultRules returns the embedded default rule set. These are imported for
// each user at provisioning time so categorization succeeds before the user
// has defined any custom rules.
func DefaultRules() ([]model.CategoryRule, error) {
	var file ruleFile
	if err := yaml.Unmarshal(defaultRulesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse embedded default rules: %w", err)
	}

	rules := make([]model.CategoryRule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		if strings.TrimSpace(spec.Pattern) == "" {
			return nil, fmt.Errorf("default rule %d has an empty pattern", i)
		}
		if strings.TrimSpace(spec.Category) == "" {
			return nil, fmt.Errorf("default rule %q has an empty category", spec.Pattern)
		}
		rules = append(rules, model.CategoryRule{
			Pattern:  spec.Pattern,
			Category: spec.Category,
			Priority: spec.Priority,
			IsRegex:  spec.IsRegex,
			IsActive: true,
		})
	}

	return rules, nil
}
