package normalize

import (
	"testing"
	"time"
)

func TestParseDateFullFormats(t *testing.T) {
	ref := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-02-10", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{"2026.02.10", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{"2026/2/9", time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)},
		{"2026-02-10 11:30:00", time.Date(2026, 2, 10, 11, 30, 0, 0, time.UTC)},
		{"2026-02-10 11:30", time.Date(2026, 2, 10, 11, 30, 0, 0, time.UTC)},
		{"2026년 2월 10일", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{"20260210", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		got, ok := ParseDate(c.in, ref)
		if !ok {
			t.Errorf("ParseDate(%q) not recognized", c.in)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDateMonthDayYearInference(t *testing.T) {
	cases := []struct {
		in   string
		ref  time.Time
		want time.Time
	}{
		// December statement read in early January belongs to the
		// previous year.
		{"12/28", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)},
		// January dates seen in late December are next year's.
		{"01/03", time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
		// Same-year dates stay put.
		{"02/10", time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{"2월 10일", time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		got, ok := ParseDate(c.in, c.ref)
		if !ok {
			t.Errorf("ParseDate(%q, ref=%v) not recognized", c.in, c.ref)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q, ref=%v) = %v, want %v", c.in, c.ref, got, c.want)
		}
	}
}

func TestParseDateRejectsNonDates(t *testing.T) {
	ref := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"", "합계", "거래일시", "99/99", "abc"} {
		if _, ok := ParseDate(in, ref); ok {
			t.Errorf("ParseDate(%q) = ok, want rejection", in)
		}
	}
}
