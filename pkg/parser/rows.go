package parser

import (
	"strings"

	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/normalize"
)

// Columns that may legitimately be empty in a statement row. When a row is
// short by exactly these columns the blanks are re-inserted at their header
// positions instead of letting every later value shift left.
var optionalColumnAliases = concat(withdrawalAliases, depositAliases, amountAliases, []string{
	"잔액", "거래후잔액", "balance",
})

// recordsFromRows runs header location, row alignment and column mapping
// over tabular data. Rows that fail to map are logged and skipped.
func (p *Parser) recordsFromRows(rows [][]string, window int, origin models.Origin) []*models.ParsedRecord {
	headerIdx := locateHeader(rows, window)
	if headerIdx < 0 {
		return nil
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}
	optional := optionalIndexes(headers)

	ref := p.now()
	var records []*models.ParsedRecord
	for _, row := range rows[headerIdx+1:] {
		if rowBlank(row) {
			continue
		}
		row = alignRow(row, headers, optional)

		cellMap := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" || i >= len(row) {
				continue
			}
			cellMap[h] = strings.TrimSpace(row[i])
		}

		rec := MapColumns(cellMap, ref)
		if rec == nil {
			p.logger.Debug("row does not map onto schema, skipping", "row", row)
			continue
		}
		rec.Origin = origin
		records = append(records, rec)
	}
	return records
}

func optionalIndexes(headers []string) []int {
	var idx []int
	for i, h := range headers {
		key := normalize.Key(h)
		for _, a := range optionalColumnAliases {
			if key == a {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

// alignRow pads a short row back to header width when the shortfall exactly
// matches the safely-optional columns. Anything else is left untouched; the
// row either still maps or gets skipped.
func alignRow(row, headers []string, optional []int) []string {
	missing := len(headers) - len(row)
	if missing <= 0 || missing != len(optional) {
		return row
	}
	aligned := make([]string, 0, len(headers))
	next := 0
	for i := range headers {
		if contains(optional, i) {
			aligned = append(aligned, "")
			continue
		}
		if next < len(row) {
			aligned = append(aligned, row[next])
			next++
		} else {
			aligned = append(aligned, "")
		}
	}
	return aligned
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
