package parser

import (
	"testing"
	"time"
)

var testRef = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestMapColumnsBankRow(t *testing.T) {
	raw := map[string]string{
		"거래일시": "2026-02-10 11:30:00",
		"적요":   "스타벅스 강남점",
		"출금액":  "5,500",
		"입금액":  "",
		"잔액":   "994,500",
	}

	rec := MapColumns(raw, testRef)
	if rec == nil {
		t.Fatal("row should map")
	}
	if rec.Amount != -5500 {
		t.Errorf("amount = %d, want -5500", rec.Amount)
	}
	if rec.Description != "스타벅스 강남점" {
		t.Errorf("description = %q", rec.Description)
	}
	want := time.Date(2026, 2, 10, 11, 30, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", rec.Timestamp, want)
	}
}

func TestMapColumnsCardRowPrefersBilledPrincipal(t *testing.T) {
	raw := map[string]string{
		"이용일":   "2026.02.11",
		"이용가맹점": "하이마트 용산점",
		"이용금액":  "1,610,400",
		"결제원금":  "536,800",
		"할부/회차": "3/3",
	}

	rec := MapColumns(raw, testRef)
	if rec == nil {
		t.Fatal("row should map")
	}
	if rec.Amount != -536800 {
		t.Errorf("amount = %d, want -536800 (billed principal over charged amount)", rec.Amount)
	}
	if rec.Merchant != "하이마트 용산점" {
		t.Errorf("merchant = %q", rec.Merchant)
	}
	if rec.Description != "하이마트 용산점" {
		t.Errorf("description should fall back to merchant, got %q", rec.Description)
	}
}

func TestMapColumnsDepositRow(t *testing.T) {
	raw := map[string]string{
		"거래일자": "2026-02-25",
		"내용":   "급여",
		"출금금액": "0",
		"입금금액": "2,500,000",
	}

	rec := MapColumns(raw, testRef)
	if rec == nil {
		t.Fatal("row should map")
	}
	if rec.Amount != 2500000 {
		t.Errorf("amount = %d, want 2500000", rec.Amount)
	}
}

func TestMapColumnsSignedAmountColumn(t *testing.T) {
	raw := map[string]string{
		"날짜":  "2026-02-20",
		"내역":  "편의점",
		"거래금액": "-4,300",
	}

	rec := MapColumns(raw, testRef)
	if rec == nil {
		t.Fatal("row should map")
	}
	if rec.Amount != -4300 {
		t.Errorf("amount = %d, want -4300", rec.Amount)
	}
}

func TestMapColumnsRejectsIncompleteRows(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]string
	}{
		{"no date", map[string]string{"적요": "스타벅스", "출금액": "5,500"}},
		{"unparseable date", map[string]string{"거래일시": "합계", "적요": "스타벅스", "출금액": "5,500"}},
		{"no description", map[string]string{"거래일시": "2026-02-10", "출금액": "5,500"}},
		{"no amount", map[string]string{"거래일시": "2026-02-10", "적요": "스타벅스"}},
		{"zero amounts", map[string]string{"거래일시": "2026-02-10", "적요": "스타벅스", "출금액": "0", "입금액": "0"}},
	}

	for _, c := range cases {
		if rec := MapColumns(c.raw, testRef); rec != nil {
			t.Errorf("%s: expected rejection, got %+v", c.name, rec)
		}
	}
}

func TestMapColumnsNormalizesHeaderSpelling(t *testing.T) {
	raw := map[string]string{
		" 거래 일시 ":       "2026-02-10",
		"Description ": "coffee",
		"AMOUNT":       "-1,200",
	}

	rec := MapColumns(raw, testRef)
	if rec == nil {
		t.Fatal("headers with spacing and case noise should still map")
	}
	if rec.Amount != -1200 {
		t.Errorf("amount = %d, want -1200", rec.Amount)
	}
}
