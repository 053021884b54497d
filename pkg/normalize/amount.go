// Package normalize turns locale-formatted currency strings, mixed date
// formats and issuer column names into canonical values.
package normalize

import (
	"strconv"
	"strings"
	"unicode"
)

var currencyTokens = strings.NewReplacer(
	"₩", "",
	"원", "",
	"KRW", "",
	"krw", "",
	"R$", "",
	"$", "",
	"USD", "",
	"usd", "",
	"€", "",
)

// ParseSignedAmount parses a locale-formatted currency string into an
// integer currency unit. A leading or trailing '-', or full parenthesization,
// makes the value negative; a leading '+' is explicitly positive. Thousands
// separators, currency symbols and a fractional tail are dropped. When no
// digits remain the result is 0 — callers treat that as "no amount present",
// never as an error.
func ParseSignedAmount(text string) int64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}

	neg := false
	if len(s) > 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	s = strings.TrimSpace(currencyTokens.Replace(s))
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if strings.HasSuffix(s, "-") {
		neg = true
		s = strings.TrimSuffix(s, "-")
	}

	// Thousands separators out, fractional tail cut.
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if i := strings.Index(s, "."); i >= 0 {
		s = s[:i]
	}

	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	if neg {
		n = -n
	}
	return n
}
