package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrace-dev/fintrace/internal/model"
)

// Statement exports are not consistent about date formats, even within one
// file. Day precedes month in every ambiguous layout: "03-04-2023" is
// April 3rd. Formats are tried in order; first parse wins.
var dateFormats = []string{
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"02-Jan-2006 15:04:05",
	"02-Jan-2006",
	"2 Jan 2006",
}

// ParseDate parses a statement date string with day-first convention.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// CoerceAmount parses a numeric cell, coercing blank or non-numeric values
// to zero instead of failing. The lossy default keeps a dirty statement
// loadable; coerced counts how many cells fell back.
func CoerceAmount(s string, coerced *int) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		*coerced++
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		*coerced++
		return decimal.Zero
	}
	return d
}

// normalizeRow builds one canonical transaction from a raw CSV record.
func normalizeRow(rec []string, cols columns, coerced *int) (model.Transaction, error) {
	ts, err := ParseDate(field(rec, cols.date))
	if err != nil {
		return model.Transaction{}, err
	}

	debit := CoerceAmount(field(rec, cols.debit), coerced)
	credit := CoerceAmount(field(rec, cols.credit), coerced)
	balance := CoerceAmount(field(rec, cols.balance), coerced)

	txn := model.Transaction{
		Timestamp: ts,
		Narration: field(rec, cols.narration),
		Debit:     debit,
		Credit:    credit,
		Balance:   balance,
		Net:       credit.Sub(debit),
		PeriodKey: model.PeriodKeyFor(ts),
	}

	if cols.branch >= 0 {
		txn.Branch, txn.IFSC = SplitBranchIFSC(field(rec, cols.branch))
	}
	return txn, nil
}

// SplitBranchIFSC splits a combined "branch - IFSC" cell. A cell without the
// separator is all branch.
func SplitBranchIFSC(s string) (branch, ifsc string) {
	parts := strings.SplitN(s, " - ", 2)
	branch = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		ifsc = strings.TrimSpace(parts[1])
	}
	return branch, ifsc
}
