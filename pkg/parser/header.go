package parser

import (
	"strings"

	"github.com/danwoo/gagyebu/pkg/normalize"
)

// Scan windows for header-row location. Statements routinely carry
// preamble rows (account holder, period, totals) before the real header;
// bounding the scan keeps a malformed or huge file from costing unbounded
// work.
const (
	headerScanWindowText        = 30
	headerScanWindowSpreadsheet = 60

	headerScoreThreshold = 6
)

var headerKeywordSets = map[string][]string{
	"date":        dateAliases,
	"amount":      concat(withdrawalAliases, depositAliases, amountAliases),
	"description": concat(descriptionAliases, merchantAliases),
	"other":       concat(accountAliases, fromAliases, toAliases, counterpartyAliases),
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// scoreHeaderRow scores how header-like a row looks: +4 when any cell is a
// date keyword, +4 for an amount keyword, +2 for a description keyword, +1
// per additional keyword match, +1 when the row has at least four non-blank
// cells, -3 when it has exactly one.
func scoreHeaderRow(cells []string) int {
	matches := map[string]int{}
	nonBlank := 0
	for _, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		nonBlank++
		key := normalize.Key(cell)
		if key == "" {
			continue
		}
		for set, aliases := range headerKeywordSets {
			for _, a := range aliases {
				if key == a {
					matches[set]++
					break
				}
			}
		}
	}

	score := 0
	extra := 0
	if matches["date"] > 0 {
		score += 4
		extra += matches["date"] - 1
	}
	if matches["amount"] > 0 {
		score += 4
		extra += matches["amount"] - 1
	}
	if matches["description"] > 0 {
		score += 2
		extra += matches["description"] - 1
	}
	extra += matches["other"]
	score += extra

	if nonBlank >= 4 {
		score++
	}
	if nonBlank == 1 {
		score -= 3
	}
	return score
}

// locateHeader finds the most header-like row inside the scan window
// starting at the first non-blank row. When nothing reaches the score
// threshold the first non-blank row is assumed to be the header, so data is
// still attempted. Returns -1 only for a fully blank sheet.
func locateHeader(rows [][]string, window int) int {
	start := -1
	for i, row := range rows {
		if !rowBlank(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return -1
	}

	end := start + window
	if end > len(rows) {
		end = len(rows)
	}

	best, bestScore := -1, 0
	for i := start; i < end; i++ {
		if rowBlank(rows[i]) {
			continue
		}
		if s := scoreHeaderRow(rows[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best >= 0 && bestScore >= headerScoreThreshold {
		return best
	}
	return start
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
