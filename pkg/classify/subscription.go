package classify

import (
	"fmt"
	"sort"

	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/normalize"
)

// Subscription detection windows: a group qualifies when it has at least
// three occurrences and every consecutive pair of dates is a calendar month
// apart, give or take.
const (
	subscriptionMinOccurrences = 3
	subscriptionMinGapDays     = 25
	subscriptionMaxGapDays     = 40
)

// detectSubscriptions runs after the whole batch is classified. Normal-kind
// expense entries are merged with existing ones, grouped by normalized
// merchant (or description) plus amount, and groups that recur on a monthly
// cadence get their batch entries reclassified to subscription. Persisted
// entries are never rewritten here; that stays an explicit user action.
func (e *Engine) detectSubscriptions(batch, existing []*models.LedgerEntry) {
	inBatch := make(map[*models.LedgerEntry]bool, len(batch))
	groups := make(map[string][]*models.LedgerEntry)

	add := func(entry *models.LedgerEntry, fromBatch bool) {
		if entry == nil || entry.Type != models.TypeExpense || entry.Kind != models.KindNormal {
			return
		}
		key := subscriptionKey(entry)
		if key == "" {
			return
		}
		groups[key] = append(groups[key], entry)
		if fromBatch {
			inBatch[entry] = true
		}
	}
	for _, entry := range existing {
		add(entry, false)
	}
	for _, entry := range batch {
		add(entry, true)
	}

	for key, group := range groups {
		if len(group) < subscriptionMinOccurrences || !monthlyCadence(group) {
			continue
		}
		for _, entry := range group {
			if !inBatch[entry] {
				continue
			}
			entry.Kind = models.KindSubscription
			entry.Category = CategorySubscription
			e.logger.Debug("reclassified as subscription", "key", key, "entry", entry.ID)
		}
	}
}

func subscriptionKey(entry *models.LedgerEntry) string {
	name := normalize.Name(entry.Merchant)
	if name == "" {
		name = normalize.Name(entry.Description)
	}
	if name == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", name, entry.Amount)
}

// monthlyCadence reports whether every consecutive pair of occurrence dates
// is 25-40 calendar days apart.
func monthlyCadence(group []*models.LedgerEntry) bool {
	dates := make([]int64, len(group))
	for i, entry := range group {
		dates[i] = entry.Timestamp.Unix() / 86400
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	for i := 1; i < len(dates); i++ {
		gap := dates[i] - dates[i-1]
		if gap < subscriptionMinGapDays || gap > subscriptionMaxGapDays {
			return false
		}
	}
	return true
}
