package parser

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/danwoo/gagyebu/pkg/models"
)

// ParseDelimited parses a delimited text export. Delimiter and charset are
// detected from content; the header row is located by scoring inside the
// scan window.
func (p *Parser) ParseDelimited(data []byte) ([]*models.ParsedRecord, error) {
	text := decodeText(data)
	delim := detectDelimiter(text)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading delimited text: %w", err)
	}

	return p.recordsFromRows(rows, headerScanWindowText, models.OriginDelimited), nil
}

// detectDelimiter picks tab when tabs are at least as frequent as commas
// and semicolons and present at all, then semicolon when it outnumbers
// comma, else comma.
func detectDelimiter(text string) rune {
	tabs := strings.Count(text, "\t")
	commas := strings.Count(text, ",")
	semis := strings.Count(text, ";")

	switch {
	case tabs > 0 && tabs >= commas && tabs >= semis:
		return '\t'
	case semis > commas:
		return ';'
	default:
		return ','
	}
}
