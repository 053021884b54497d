// Package store provides the in-process reference implementation of the
// ledger storage boundary. Real persistence (and its uniqueness and
// transaction guarantees) lives outside this module; this implementation
// backs the server, the CLI and tests.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/danwoo/gagyebu/pkg/models"
)

// Memory keeps ledger entries in process, deduplicated by fingerprint.
type Memory struct {
	mu            sync.RWMutex
	byID          map[string]*models.LedgerEntry
	byFingerprint map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		byID:          make(map[string]*models.LedgerEntry),
		byFingerprint: make(map[string]string),
	}
}

// InsertIfAbsent inserts every entry whose fingerprint is not present yet
// and reports how many were inserted.
func (m *Memory) InsertIfAbsent(entries []*models.LedgerEntry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inserted := 0
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		fp := entry.Fingerprint()
		if _, ok := m.byFingerprint[fp]; ok {
			continue
		}
		m.byID[entry.ID] = entry
		m.byFingerprint[fp] = entry.ID
		inserted++
	}
	return inserted, nil
}

// UpdateByID replaces a stored entry in place.
func (m *Memory) UpdateByID(entry *models.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[entry.ID]; !ok {
		return fmt.Errorf("entry %s not found", entry.ID)
	}
	m.byID[entry.ID] = entry
	return nil
}

// ListAll returns every stored entry ordered by timestamp.
func (m *Memory) ListAll() ([]*models.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.LedgerEntry, 0, len(m.byID))
	for _, e := range m.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}
