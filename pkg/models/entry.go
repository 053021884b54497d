package models

import "time"

// TxType is the semantic type of a ledger entry.
type TxType string

const (
	TypeIncome   TxType = "income"
	TypeExpense  TxType = "expense"
	TypeTransfer TxType = "transfer"
)

// TxTypeFromString resolves stored text back to a TxType. Unknown values
// resolve to TypeExpense rather than failing.
func TxTypeFromString(s string) TxType {
	switch TxType(s) {
	case TypeIncome, TypeExpense, TypeTransfer:
		return TxType(s)
	default:
		return TypeExpense
	}
}

// SpendingKind describes the recurring-cost character of an expense,
// orthogonal to TxType.
type SpendingKind string

const (
	KindNormal       SpendingKind = "normal"
	KindSubscription SpendingKind = "subscription"
	KindInstallment  SpendingKind = "installment"
	KindLoan         SpendingKind = "loan"
)

// SpendingKindFromString resolves stored text back to a SpendingKind,
// defaulting to KindNormal.
func SpendingKindFromString(s string) SpendingKind {
	switch SpendingKind(s) {
	case KindNormal, KindSubscription, KindInstallment, KindLoan:
		return SpendingKind(s)
	default:
		return KindNormal
	}
}

// Origin identifies which ingestion path produced a record.
type Origin string

const (
	OriginDelimited    Origin = "delimited"
	OriginSpreadsheet  Origin = "spreadsheet"
	OriginPDF          Origin = "pdf"
	OriginNotification Origin = "notification"
	OriginManual       Origin = "manual"
	OriginRecurring    Origin = "recurring"
)

// OriginFromString resolves stored text back to an Origin, defaulting to
// OriginManual.
func OriginFromString(s string) Origin {
	switch Origin(s) {
	case OriginDelimited, OriginSpreadsheet, OriginPDF, OriginNotification, OriginManual, OriginRecurring:
		return Origin(s)
	default:
		return OriginManual
	}
}

// LedgerEntry is the canonical, persisted transaction.
//
// Invariants: CountedInExpense == (Type == TypeExpense), and Kind may only
// differ from KindNormal when Type == TypeExpense. Use Normalize to restore
// them after mutating Type.
type LedgerEntry struct {
	ID               string
	Timestamp        time.Time
	Amount           int64 // unsigned magnitude, sign carried by Type
	Type             TxType
	Category         string
	Description      string
	Merchant         string
	Origin           Origin
	Kind             SpendingKind
	CountedInExpense bool
	AccountMask      string
	Counterparty     string
	// TemplateID is set on entries generated from a recurring template and
	// switches fingerprinting to the template key.
	TemplateID string
	CreatedAt  time.Time
}

// Normalize re-establishes the type-dependent invariants.
func (e *LedgerEntry) Normalize() {
	e.CountedInExpense = e.Type == TypeExpense
	if e.Type != TypeExpense {
		e.Kind = KindNormal
	}
}
