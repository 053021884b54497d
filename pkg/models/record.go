package models

import "time"

// ParsedRecord is an intermediate, unvalidated transaction candidate
// produced by a parser. Amount is signed: negative means outflow. Raw keeps
// the original column map so the classifier can read issuer-specific hints
// (installment counters and the like).
type ParsedRecord struct {
	Timestamp    time.Time
	Amount       int64
	Description  string
	Merchant     string
	AccountMask  string
	FromMask     string
	ToMask       string
	Counterparty string
	Origin       Origin
	Raw          map[string]string
}
