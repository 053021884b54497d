package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rule matches entries by case-insensitive substring of description and
// merchant. When several rules match the same text, the longest keyword wins.
type Rule struct {
	ID         string       `yaml:"id"`
	Keyword    string       `yaml:"keyword"`
	Kind       SpendingKind `yaml:"kind"`
	Category   string       `yaml:"category"`
	ForcedType *TxType      `yaml:"type,omitempty"`
	Enabled    bool         `yaml:"enabled"`
	CreatedAt  time.Time    `yaml:"created_at"`
}

// NewRule builds a rule with a normalized keyword. The keyword must not be
// blank; it is lower-cased at creation so matching stays case-insensitive.
func NewRule(keyword string, kind SpendingKind, category string, forced *TxType) (*Rule, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil, fmt.Errorf("rule keyword must not be blank")
	}
	return &Rule{
		ID:         uuid.NewString(),
		Keyword:    kw,
		Kind:       kind,
		Category:   category,
		ForcedType: forced,
		Enabled:    true,
		CreatedAt:  time.Now(),
	}, nil
}

// MatchRule returns the enabled rule with the longest keyword contained in
// text, or nil. Insertion order never affects the outcome.
func MatchRule(text string, rules []*Rule) *Rule {
	lower := strings.ToLower(text)
	var best *Rule
	for _, r := range rules {
		if r == nil || !r.Enabled || r.Keyword == "" {
			continue
		}
		if !strings.Contains(lower, r.Keyword) {
			continue
		}
		if best == nil || len(r.Keyword) > len(best.Keyword) {
			best = r
		}
	}
	return best
}
