package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/normalize"
)

var (
	// "3/12", "할부/회차: 3/1" — both sides 1..99, at least one ≥ 2. The
	// digit boundaries keep slash-separated dates from matching.
	fractionPattern = regexp.MustCompile(`(?:^|[^\d])(\d{1,2})\s*/\s*(\d{1,2})(?:[^\d]|$)`)
	// "12개월", "3회차", "6 months"
	monthsPattern = regexp.MustCompile(`(?i)(\d{1,2})\s*(?:개월|회차|months?|installments?)`)
)

// detectSpendingKind scans the description and the raw column map for
// recurring-cost signals. Loan terms win outright; an explicit one-time
// marker short-circuits everything else to normal; installment terms and
// numeric installment patterns come last.
func detectSpendingKind(rec *models.ParsedRecord) models.SpendingKind {
	blob := kindScanText(rec)

	if containsAny(blob, loanKeywords) {
		return models.KindLoan
	}
	if containsAny(blob, oneTimeKeywords) {
		return models.KindNormal
	}
	if containsAny(blob, installmentKeywords) {
		return models.KindInstallment
	}
	if hasInstallmentFraction(blob) || monthsPattern.MatchString(blob) {
		return models.KindInstallment
	}
	return models.KindNormal
}

// kindScanText folds the description plus every raw column key and value
// into one normalized haystack. Installment hints often live in the column
// name itself ("할부/회차"), not the cell value.
func kindScanText(rec *models.ParsedRecord) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(rec.Description))
	for k, v := range rec.Raw {
		key := normalize.Key(k)
		if strings.Contains(key, "date") || strings.Contains(key, "일") || strings.Contains(key, "날짜") {
			// date columns carry slash patterns that look like N/M counters
			continue
		}
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(" ")
		b.WriteString(strings.ToLower(v))
	}
	return b.String()
}

func hasInstallmentFraction(text string) bool {
	for _, m := range fractionPattern.FindAllStringSubmatch(text, -1) {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if a >= 1 && a <= 99 && b >= 1 && b <= 99 && (a >= 2 || b >= 2) {
			return true
		}
	}
	return false
}

func containsAny(haystack string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}
