package normalize

import (
	"strings"
	"unicode"
)

// Key flattens a column header or raw-column key for alias lookup: case,
// whitespace and punctuation are stripped so "이용 금액", "이용금액" and
// "Amount (KRW)" all collapse to comparable forms.
func Key(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Name flattens a person or merchant name for identity comparison.
func Name(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
