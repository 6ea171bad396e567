// Package export serializes analysis output back to the statement's own
// delimited format, UTF-8, header row matching the original column names.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fintrace-dev/fintrace/internal/model"
	"github.com/fintrace-dev/fintrace/internal/statement"
)

const exportDateFormat = "02-01-2006 15:04:05"

// Headers returns the export header row. Ledgers from the branch/IFSC
// statement variant get the combined branch column back.
func Headers(withBranch bool) []string {
	h := []string{
		statement.ColDate,
		statement.ColNarration,
		statement.ColDebit,
		statement.ColCredit,
		statement.ColBalance,
	}
	if withBranch {
		h = append(h, statement.ColBranchIFSC)
	}
	return h
}

// WriteLedger writes transactions as a statement CSV, header included.
func WriteLedger(w io.Writer, txns []model.Transaction, withBranch bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Headers(withBranch)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(marshalTransaction(t, withBranch)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalTransaction(t model.Transaction, withBranch bool) []string {
	row := []string{
		t.Timestamp.Format(exportDateFormat),
		t.Narration,
		t.Debit.StringFixed(2),
		t.Credit.StringFixed(2),
		t.Balance.StringFixed(2),
	}
	if withBranch {
		combined := t.Branch
		if t.IFSC != "" {
			combined = t.Branch + " - " + t.IFSC
		}
		row = append(row, combined)
	}
	return row
}
