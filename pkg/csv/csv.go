// Package csv renders ledger entries as canonical CSV.
package csv

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/danwoo/gagyebu/pkg/models"
)

// FilterFunc selects which entries make it into the output.
type FilterFunc func(*models.LedgerEntry) bool

var header = []string{"Date", "Type", "Category", "Description", "Merchant", "Amount", "Kind", "Counted"}

// Create renders entries as CSV bytes, applying the filter when non-nil.
func Create(entries []*models.LedgerEntry, filter FilterFunc) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write(header)
	for _, e := range entries {
		if filter != nil && !filter(e) {
			continue
		}
		w.Write([]string{
			e.Timestamp.Format("2006/01/02"),
			string(e.Type),
			e.Category,
			e.Description,
			e.Merchant,
			strconv.FormatInt(e.Amount, 10),
			string(e.Kind),
			strconv.FormatBool(e.CountedInExpense),
		})
	}

	w.Flush()
	return buf.Bytes()
}
