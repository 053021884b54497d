// Package rules holds classification rules and their keyed store. The
// classification engine consumes the store read-only; management surfaces
// mutate it.
package rules

import (
	"fmt"
	"sort"
	"sync"

	"github.com/danwoo/gagyebu/pkg/models"
)

// Store is the rule CRUD boundary.
type Store interface {
	Add(rule *models.Rule) error
	Remove(id string) error
	List() []*models.Rule
	Enabled() []*models.Rule
}

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	rules map[string]*models.Rule
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rules: make(map[string]*models.Rule)}
}

func (s *MemoryStore) Add(rule *models.Rule) error {
	if rule == nil || rule.Keyword == "" {
		return fmt.Errorf("rule must have a keyword")
	}
	if rule.ID == "" {
		return fmt.Errorf("rule must have an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[rule.ID] = rule
	return nil
}

func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[id]; !ok {
		return fmt.Errorf("rule %s not found", id)
	}
	delete(s.rules, id)
	return nil
}

func (s *MemoryStore) List() []*models.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Rule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *MemoryStore) Enabled() []*models.Rule {
	var out []*models.Rule
	for _, r := range s.List() {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}
