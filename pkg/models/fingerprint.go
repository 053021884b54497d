package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Fingerprint derives the dedup identity of an entry: minute-bucketed time,
// type, amount and normalized description. Two records landing in the same
// calendar minute with equal type, amount and description are the same
// transaction.
//
// Manually entered records get a uniqueness suffix so repeated manual input
// is never collapsed, and recurring-template entries use a deterministic key
// built from the template id and target date instead of the minute rule.
func (e *LedgerEntry) Fingerprint() string {
	if e.TemplateID != "" {
		return fmt.Sprintf("rt|%s|%s", e.TemplateID, e.Timestamp.Format("2006-01-02"))
	}
	fp := fmt.Sprintf("%d|%s|%d|%s", e.Timestamp.Unix()/60, e.Type, e.Amount, normalizeFingerprintText(e.Description))
	if e.Origin == OriginManual {
		fp += "|" + uuid.NewString()
	}
	return fp
}

func normalizeFingerprintText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
