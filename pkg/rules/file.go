package rules

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/danwoo/gagyebu/pkg/models"
)

type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Keyword  string `yaml:"keyword"`
	Kind     string `yaml:"kind"`
	Category string `yaml:"category"`
	Type     string `yaml:"type"`
	Disabled bool   `yaml:"disabled"`
}

// LoadFile reads classification rules from a YAML file. Keywords are
// normalized the same way NewRule does; blank keywords are rejected.
func LoadFile(path string) ([]*models.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rules yaml: %w", err)
	}

	out := make([]*models.Rule, 0, len(f.Rules))
	for i, spec := range f.Rules {
		kw := strings.ToLower(strings.TrimSpace(spec.Keyword))
		if kw == "" {
			return nil, fmt.Errorf("rule %d has a blank keyword", i+1)
		}
		rule := &models.Rule{
			ID:        uuid.NewString(),
			Keyword:   kw,
			Kind:      models.SpendingKindFromString(spec.Kind),
			Category:  spec.Category,
			Enabled:   !spec.Disabled,
			CreatedAt: time.Now(),
		}
		if spec.Type != "" {
			t := models.TxTypeFromString(spec.Type)
			rule.ForcedType = &t
		}
		out = append(out, rule)
	}
	return out, nil
}
