package main

import (
	"strings"
	"time"

	"github.com/danwoo/gagyebu/pkg/csv"
	"github.com/danwoo/gagyebu/pkg/models"
)

type filters struct {
	startDate string
	endDate   string
	minAmount int64
	maxAmount int64
	merchant  string
}

func (f *filters) toFilterFunc() csv.FilterFunc {
	return func(e *models.LedgerEntry) bool {
		if f.startDate != "" {
			start, _ := time.Parse("2006/01/02", f.startDate)
			if e.Timestamp.Before(start) {
				return false
			}
		}
		if f.endDate != "" {
			end, _ := time.Parse("2006/01/02", f.endDate)
			if e.Timestamp.After(end.Add(24*time.Hour - time.Second)) {
				return false
			}
		}
		if f.minAmount != 0 && e.Amount < f.minAmount {
			return false
		}
		if f.maxAmount != 0 && e.Amount > f.maxAmount {
			return false
		}
		if f.merchant != "" {
			haystack := strings.ToLower(e.Merchant + " " + e.Description)
			if !strings.Contains(haystack, strings.ToLower(f.merchant)) {
				return false
			}
		}
		return true
	}
}
