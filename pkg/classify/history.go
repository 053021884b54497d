package classify

import (
	"sort"

	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/normalize"
)

// categoryHistory lets recurring unlabeled merchants inherit the user's
// prior categorization without an explicit rule. It maps normalized lookup
// keys to the most recently seen category of an expense entry, seeded from
// persisted records, then updated as the batch is processed in order. The
// map is scoped to one classification call.
type categoryHistory struct {
	byKey map[string]string
}

func newCategoryHistory(existing []*models.LedgerEntry) *categoryHistory {
	h := &categoryHistory{byKey: make(map[string]string)}

	// Seed newest-first so the most recent persisted category wins;
	// within the seed, first writer per key keeps it.
	seed := make([]*models.LedgerEntry, 0, len(existing))
	for _, e := range existing {
		if e != nil && e.Type == models.TypeExpense && e.Category != "" {
			seed = append(seed, e)
		}
	}
	sort.SliceStable(seed, func(i, j int) bool {
		return seed[i].Timestamp.After(seed[j].Timestamp)
	})
	for _, e := range seed {
		for _, key := range historyKeys(e.Merchant, e.Description) {
			if _, ok := h.byKey[key]; !ok {
				h.byKey[key] = e.Category
			}
		}
	}
	return h
}

// observe records the category just assigned to a batch entry, overwriting
// older observations: within the batch the most recently seen wins.
func (h *categoryHistory) observe(merchant, description, category string) {
	if category == "" {
		return
	}
	for _, key := range historyKeys(merchant, description) {
		h.byKey[key] = category
	}
}

// lookup returns the category of the first matching key, most specific
// first: merchant+description pair, merchant alone, description alone.
func (h *categoryHistory) lookup(merchant, description string) string {
	for _, key := range historyKeys(merchant, description) {
		if c, ok := h.byKey[key]; ok {
			return c
		}
	}
	return ""
}

// historyKeys derives the lookup keys for an entry: the merchant token when
// it has at least 2 runes, the description token at 4, and a pair key when
// both are present.
func historyKeys(merchant, description string) []string {
	m := normalize.Name(merchant)
	d := normalize.Name(description)
	if len([]rune(m)) < 2 {
		m = ""
	}
	if len([]rune(d)) < 4 {
		d = ""
	}

	var keys []string
	if m != "" && d != "" {
		keys = append(keys, m+"|"+d)
	}
	if m != "" {
		keys = append(keys, "m:"+m)
	}
	if d != "" {
		keys = append(keys, "d:"+d)
	}
	return keys
}
