package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a transaction by its narration keyword.
type Category string

const (
	CategoryNEFT     Category = "NEFT"
	CategoryIMPS     Category = "IMPS"
	CategoryUPI      Category = "UPI"
	CategoryATM      Category = "ATM"
	CategoryTransfer Category = "TRANSFER"
	CategoryOther    Category = "OTHER"
)

// Transaction is one normalized bank-statement row.
type Transaction struct {
	Timestamp time.Time
	Narration string
	Branch    string // only set by the branch/IFSC statement variant
	IFSC      string
	Debit     decimal.Decimal // zero if the row is a credit
	Credit    decimal.Decimal // zero if the row is a debit
	Balance   decimal.Decimal // running balance after the row

	// Derived at normalization time.
	Net       decimal.Decimal // Credit - Debit
	PeriodKey string          // "2006-01", sorts chronologically

	// Derived by the annotators.
	Category     Category
	Counterparty string

	// Anomalous is only meaningful once Scored is true.
	Anomalous bool
	Scored    bool
}

// PeriodKeyFor returns the year-month grouping key for a timestamp.
func PeriodKeyFor(t time.Time) string {
	return t.Format("2006-01")
}
