package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fintrace-dev/fintrace/internal/model"
)

// Required statement column names. Matching is exact, order-independent;
// extra columns are ignored.
const (
	ColDate       = "Transaction Date"
	ColNarration  = "Narration"
	ColDebit      = "Debit Amount"
	ColCredit     = "Credit Amount"
	ColBalance    = "Line Balance"
	ColBranchIFSC = "Branch Name/ IFSC Code"
)

// RequiredColumns lists the columns every statement must carry.
var RequiredColumns = []string{ColDate, ColNarration, ColDebit, ColCredit, ColBalance}

// Ledger is a normalized statement: transactions in original row order plus
// ingest diagnostics.
type Ledger struct {
	Transactions []model.Transaction
	HasBranch    bool // branch/IFSC variant statement
	Coerced      int  // amount cells coerced to zero during normalization
}

// SchemaError reports statement columns that are required but absent.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("statement is missing required column(s): %s (expected schema: %s)",
		strings.Join(e.Missing, ", "), strings.Join(RequiredColumns, ", "))
}

// Read parses a statement CSV and returns the normalized ledger. A missing
// required column or an unparseable date aborts the whole read; no partial
// ledger is returned.
func Read(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("statement is empty: no header row")
	}

	cols, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	ledger := &Ledger{HasBranch: cols.branch >= 0}
	for i, rec := range records[1:] {
		txn, err := normalizeRow(rec, cols, &ledger.Coerced)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		ledger.Transactions = append(ledger.Transactions, txn)
	}
	return ledger, nil
}

// columns holds resolved field indices for one statement header.
type columns struct {
	date      int
	narration int
	debit     int
	credit    int
	balance   int
	branch    int // -1 when the variant column is absent
}

func resolveColumns(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	cols := columns{date: -1, narration: -1, debit: -1, credit: -1, balance: -1, branch: -1}
	var missing []string
	lookup := func(name string) int {
		i, ok := idx[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	cols.date = lookup(ColDate)
	cols.narration = lookup(ColNarration)
	cols.debit = lookup(ColDebit)
	cols.credit = lookup(ColCredit)
	cols.balance = lookup(ColBalance)
	if i, ok := idx[ColBranchIFSC]; ok {
		cols.branch = i
	}

	if len(missing) > 0 {
		return columns{}, &SchemaError{Missing: missing}
	}
	return cols, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
