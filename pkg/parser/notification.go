package parser

import (
	"regexp"
	"strings"

	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/normalize"
)

// Push notifications carry no structure at all, so amount detection runs
// four competing regex families and scores each candidate by the keywords
// around it. Unit-adjacent matches start ahead of keyword-adjacent ones.
type notifPattern struct {
	re   *regexp.Regexp
	base int
}

var notifPatterns = []notifPattern{
	// unit-suffixed: "2,500,000원"
	{regexp.MustCompile(`([+-]?\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*(?:원|KRW|₩)`), 60},
	// unit-prefixed: "₩2,500,000"
	{regexp.MustCompile(`(?:₩|KRW|\$)\s*([+-]?\d[\d,]*(?:\.\d+)?)`), 60},
	// keyword-then-amount: "결제 12,000"
	{regexp.MustCompile(`(?i)(?:승인|출금|입금|결제|이체|송금|payment|paid|deposit|withdrawal)\s*:?\s*([+-]?\d[\d,]*(?:\.\d+)?)`), 40},
	// amount-then-keyword: "12,000 승인"
	{regexp.MustCompile(`(?i)([+-]?\d[\d,]*(?:\.\d+)?)\s*(?:승인|출금|입금|결제|이체|송금|approved)`), 40},
}

// contextRunes is the window, in runes, scanned on each side of a candidate
// amount for boosting and penalizing keywords.
const contextRunes = 12

var (
	notifTxKeywords = []string{
		"승인", "출금", "입금", "결제", "이체", "송금", "사용", "체크카드",
		"payment", "paid", "purchase", "withdrawal", "deposit", "transfer",
	}
	notifNonTxKeywords = []string{
		"잔액", "포인트", "쿠폰", "혜택", "이벤트", "광고", "적립",
		"balance", "point", "coupon", "promo", "event",
	}
	notifBoostKeywords = []string{
		"승인", "출금", "입금", "결제", "이체", "송금",
		"payment", "deposit", "withdraw", "transfer",
	}
	notifCurrencyTokens = []string{"원", "₩", "krw", "$"}
	notifIncomeKeywords = []string{
		"입금", "급여", "환급", "이자", "캐시백",
		"deposit", "salary", "refund", "interest",
	}
	notifExpenseKeywords = []string{
		"출금", "결제", "승인", "사용",
		"payment", "paid", "purchase", "withdrawal",
	}
)

type notifCandidate struct {
	amount   int64 // magnitude
	score    int
	token    string
	full     string
	explicit bool // token carried its own sign
	negative bool
}

// LooksLikeTransaction is the cheap gate run before parsing. Notifications
// dominated by non-transaction vocabulary (balance, points, promos) are
// rejected early; everything else needs a detectable amount plus either a
// transaction keyword, a currency token or an explicit sign.
func (p *Parser) LooksLikeTransaction(title, text string) bool {
	merged := strings.TrimSpace(title + " " + text)
	lower := strings.ToLower(merged)

	nonTx := 0
	for _, k := range notifNonTxKeywords {
		if strings.Contains(lower, k) {
			nonTx++
		}
	}
	hasTx := containsAnyFold(merged, notifTxKeywords)
	if nonTx >= 2 && !hasTx {
		return false
	}

	cands := notifCandidates(merged)
	if len(cands) == 0 {
		return false
	}
	if hasTx || containsAnyFold(merged, notifCurrencyTokens) {
		return true
	}
	for _, c := range cands {
		if c.explicit {
			return true
		}
	}
	return false
}

// ParseNotification extracts a transaction from a notification title/body
// pair. The highest-scoring candidate amount wins, ties broken by the
// larger amount; nil means no plausible transaction was found.
func (p *Parser) ParseNotification(title, text string) *models.ParsedRecord {
	merged := strings.TrimSpace(title + " " + text)
	cands := notifCandidates(merged)

	var best *notifCandidate
	for i := range cands {
		c := &cands[i]
		if c.amount <= 0 || c.score <= 0 {
			continue
		}
		if best == nil || c.score > best.score || (c.score == best.score && c.amount > best.amount) {
			best = c
		}
	}
	if best == nil {
		return nil
	}

	amount := best.amount
	switch {
	case best.explicit:
		if best.negative {
			amount = -amount
		}
	case containsAnyFold(merged, notifIncomeKeywords):
		// income, keep positive
	case containsAnyFold(merged, notifExpenseKeywords):
		amount = -amount
	default:
		// Ambiguous notifications are treated as spend: capture false
		// positives are more often purchases.
		amount = -amount
	}

	description := strings.Join(strings.Fields(strings.Replace(text, best.full, " ", 1)), " ")
	if description == "" {
		description = strings.TrimSpace(title)
	}

	return &models.ParsedRecord{
		Timestamp:   p.now(),
		Amount:      amount,
		Description: description,
		Merchant:    strings.TrimSpace(title),
		Origin:      models.OriginNotification,
		Raw:         map[string]string{"title": title, "text": text},
	}
}

func notifCandidates(merged string) []notifCandidate {
	var cands []notifCandidate
	for _, pat := range notifPatterns {
		for _, idx := range pat.re.FindAllStringSubmatchIndex(merged, -1) {
			token := merged[idx[2]:idx[3]]
			value := normalize.ParseSignedAmount(token)
			if value == 0 {
				continue
			}
			magnitude := value
			if magnitude < 0 {
				magnitude = -magnitude
			}
			cands = append(cands, notifCandidate{
				amount:   magnitude,
				score:    pat.base + contextScore(merged, idx[0], idx[1]),
				token:    token,
				full:     merged[idx[0]:idx[1]],
				explicit: strings.HasPrefix(token, "+") || strings.HasPrefix(token, "-"),
				negative: strings.HasPrefix(token, "-"),
			})
		}
	}
	return cands
}

// contextScore adds +5 per boosting keyword and -6 per penalizing keyword
// found within the rune window on each side of the match.
func contextScore(s string, start, end int) int {
	left := []rune(s[:start])
	if len(left) > contextRunes {
		left = left[len(left)-contextRunes:]
	}
	right := []rune(s[end:])
	if len(right) > contextRunes {
		right = right[:contextRunes]
	}
	window := strings.ToLower(string(left) + " " + string(right))

	score := 0
	for _, k := range notifBoostKeywords {
		score += 5 * strings.Count(window, k)
	}
	for _, k := range notifNonTxKeywords {
		score -= 6 * strings.Count(window, k)
	}
	return score
}
