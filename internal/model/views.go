package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StructuredGroup is a cluster of near-equal debit amounts that may indicate
// structuring. Emitted only when Count meets the detector's minimum.
type StructuredGroup struct {
	Amount decimal.Decimal // anchor amount the group was built around
	Count  int
	Start  time.Time // earliest member date
	End    time.Time // latest member date
	Total  decimal.Decimal
}

// CounterpartyStat aggregates activity for one extracted counterparty key.
type CounterpartyStat struct {
	Key         string
	Count       int
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// MonthlyActivity is one row of the monthly rollup.
type MonthlyActivity struct {
	Period      string // period key, "2006-01"
	Count       int
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// HourCount is the number of transactions in one hour-of-day bucket.
type HourCount struct {
	Hour  int // 0-23
	Count int
}

// Summary holds the headline figures for a ledger view.
type Summary struct {
	Count          int
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	ClosingBalance decimal.Decimal // running balance of the last row
}
