package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/normalize"
)

// pdfLineRegex matches one statement line: a date, a free-text middle
// segment, and a trailing signed or unsigned amount with an optional
// currency suffix.
var pdfLineRegex = regexp.MustCompile(`^(\d{4}[.\-/]\d{1,2}[.\-/]\d{1,2}(?:\s+\d{1,2}:\d{2}(?::\d{2})?)?)\s+(.+?)\s+([+-]?\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*(?:원|KRW|₩)?$`)

var pdfIncomeKeywords = []string{
	"입금", "급여", "이자", "환급", "상여", "캐시백",
	"deposit", "salary", "interest", "refund", "cashback",
}

// ParsePDF extracts flat text from the document and recovers
// date/description/amount triples line by line. This is a best-effort
// extractor, not a layout parser: lines that do not match are skipped.
func (p *Parser) ParsePDF(data []byte) ([]*models.ParsedRecord, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("error opening pdf: %w", err)
	}

	var text bytes.Buffer
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Debug("failed to extract pdf page text", "page", i, "error", err)
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}

	return p.parseStatementText(text.String()), nil
}

func (p *Parser) parseStatementText(text string) []*models.ParsedRecord {
	ref := p.now()
	var records []*models.ParsedRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := pdfLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		ts, ok := normalize.ParseDate(m[1], ref)
		if !ok {
			continue
		}
		description := strings.TrimSpace(m[2])
		amount := normalize.ParseSignedAmount(m[3])
		if amount == 0 {
			continue
		}

		// Explicit sign in the amount token wins; otherwise income
		// keywords in the description decide, defaulting to expense.
		if !strings.HasPrefix(m[3], "+") && !strings.HasPrefix(m[3], "-") {
			if containsAnyFold(description, pdfIncomeKeywords) {
				if amount < 0 {
					amount = -amount
				}
			} else if amount > 0 {
				amount = -amount
			}
		}

		records = append(records, &models.ParsedRecord{
			Timestamp:   ts,
			Amount:      amount,
			Description: description,
			Origin:      models.OriginPDF,
			Raw:         map[string]string{"line": line},
		})
	}
	return records
}

func containsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
