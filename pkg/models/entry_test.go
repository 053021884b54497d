package models

import "testing"

func TestNormalizeExpenseFlag(t *testing.T) {
	e := LedgerEntry{Type: TypeExpense, Kind: KindInstallment}
	e.Normalize()
	if !e.CountedInExpense {
		t.Error("expense entries must count toward spending totals")
	}
	if e.Kind != KindInstallment {
		t.Errorf("expense kind should survive, got %q", e.Kind)
	}

	e.Type = TypeTransfer
	e.Normalize()
	if e.CountedInExpense {
		t.Error("transfers must not count toward spending totals")
	}
	if e.Kind != KindNormal {
		t.Errorf("non-expense entries must reset kind to normal, got %q", e.Kind)
	}
}

func TestFromStringDefaults(t *testing.T) {
	if got := TxTypeFromString("garbage"); got != TypeExpense {
		t.Errorf("TxTypeFromString fallback = %q, want %q", got, TypeExpense)
	}
	if got := SpendingKindFromString("garbage"); got != KindNormal {
		t.Errorf("SpendingKindFromString fallback = %q, want %q", got, KindNormal)
	}
	if got := OriginFromString("garbage"); got != OriginManual {
		t.Errorf("OriginFromString fallback = %q, want %q", got, OriginManual)
	}
	if got := TxTypeFromString("income"); got != TypeIncome {
		t.Errorf("TxTypeFromString(income) = %q", got)
	}
}
