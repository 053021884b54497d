// Package classify assigns type, spending-kind and category to parsed
// records using layered heuristics: explicit rules first, then keyword
// dictionaries, historical precedent and temporal pattern detection. The
// layers are deliberately ordered and each one is independently testable.
package classify

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/danwoo/gagyebu/pkg/models"
)

// Context carries the reference data one classification call runs against.
// It is read-only for the engine; the batch-local category history is the
// only mutable state and is discarded after the call.
type Context struct {
	Existing      []*models.LedgerEntry
	OwnedAccounts []models.OwnedAccount
	OwnerAliases  []string
	Rules         []*models.Rule
}

type Engine struct {
	logger *log.Logger
	now    func() time.Time
}

func New(logger *log.Logger) *Engine {
	return &Engine{
		logger: logger,
		now:    time.Now,
	}
}

// Classify converts a batch of parsed records into ledger entries,
// preserving batch order. After the whole batch is classified a post-hoc
// pass merges it with existing entries to detect monthly subscription
// patterns; only entries from the current batch are reclassified.
func (e *Engine) Classify(records []*models.ParsedRecord, ctx *Context) []*models.LedgerEntry {
	if ctx == nil {
		ctx = &Context{}
	}
	history := newCategoryHistory(ctx.Existing)

	entries := make([]*models.LedgerEntry, 0, len(records))
	for _, rec := range records {
		entry := e.classifyRecord(rec, ctx, history)
		entries = append(entries, entry)
	}

	e.detectSubscriptions(entries, ctx.Existing)
	return entries
}

func (e *Engine) classifyRecord(rec *models.ParsedRecord, ctx *Context, history *categoryHistory) *models.LedgerEntry {
	typ := models.TypeExpense
	if rec.Amount > 0 {
		typ = models.TypeIncome
	}
	if isInternalTransfer(rec, ctx) {
		typ = models.TypeTransfer
	}

	rule := models.MatchRule(rec.Description+" "+rec.Merchant, ctx.Rules)
	if rule != nil && rule.ForcedType != nil {
		typ = *rule.ForcedType
	}

	kind := models.KindNormal
	if typ == models.TypeExpense {
		if rule != nil && rule.Kind != "" && rule.Kind != models.KindNormal {
			kind = rule.Kind
		} else {
			kind = detectSpendingKind(rec)
		}
	}

	entry := &models.LedgerEntry{
		ID:           uuid.NewString(),
		Timestamp:    rec.Timestamp,
		Amount:       abs(rec.Amount),
		Type:         typ,
		Category:     resolveCategory(rec, typ, kind, rule, history),
		Description:  rec.Description,
		Merchant:     rec.Merchant,
		Origin:       rec.Origin,
		Kind:         kind,
		AccountMask:  rec.AccountMask,
		Counterparty: rec.Counterparty,
		CreatedAt:    e.now(),
	}
	entry.Normalize()

	if entry.Type == models.TypeExpense {
		history.observe(entry.Merchant, entry.Description, entry.Category)
	}
	return entry
}

// resolveCategory runs the precedence chain as an explicit resolver list:
// rule category, transfer default, income keywords, loan/installment fixed
// categories, history, keyword dictionary, generic fallback. First non-empty
// result wins.
func resolveCategory(rec *models.ParsedRecord, typ models.TxType, kind models.SpendingKind, rule *models.Rule, history *categoryHistory) string {
	resolvers := []func() string{
		func() string {
			if rule != nil && typ == models.TypeExpense {
				return rule.Category
			}
			return ""
		},
		func() string {
			if typ == models.TypeTransfer {
				return CategoryTransfer
			}
			return ""
		},
		func() string {
			if typ == models.TypeIncome {
				return incomeCategory(rec.Description + " " + rec.Merchant)
			}
			return ""
		},
		func() string {
			switch kind {
			case models.KindLoan:
				return CategoryLoan
			case models.KindInstallment:
				return CategoryInstallment
			}
			return ""
		},
		func() string {
			return history.lookup(rec.Merchant, rec.Description)
		},
		func() string {
			return dictionaryCategory(rec.Description + " " + rec.Merchant)
		},
	}
	for _, resolve := range resolvers {
		if c := resolve(); c != "" {
			return c
		}
	}
	return CategoryFallback
}

// ApplyRuleIfMatched re-runs the rule layer against an already-persisted
// entry, for bulk re-classification when rules change. Returns true when a
// rule matched and the entry was updated.
func (e *Engine) ApplyRuleIfMatched(entry *models.LedgerEntry, rules []*models.Rule) bool {
	rule := models.MatchRule(entry.Description+" "+entry.Merchant, rules)
	if rule == nil {
		return false
	}

	if rule.ForcedType != nil {
		entry.Type = *rule.ForcedType
	}
	if entry.Type == models.TypeExpense {
		if rule.Kind != "" && rule.Kind != models.KindNormal {
			entry.Kind = rule.Kind
		}
		if rule.Category != "" {
			entry.Category = rule.Category
		}
	}
	entry.Normalize()
	return true
}

func incomeCategory(text string) string {
	lower := strings.ToLower(text)
	for _, kc := range incomeCategories {
		if strings.Contains(lower, kc.keyword) {
			return kc.category
		}
	}
	return CategoryIncomeOther
}

func dictionaryCategory(text string) string {
	lower := strings.ToLower(text)
	for _, kc := range defaultCategories {
		if strings.Contains(lower, kc.keyword) {
			return kc.category
		}
	}
	return ""
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
