package export

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrace-dev/fintrace/internal/model"
	"github.com/fintrace-dev/fintrace/internal/statement"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sampleTxns() []model.Transaction {
	return []model.Transaction{
		{
			Timestamp: time.Date(2023, 4, 3, 14, 30, 5, 0, time.UTC),
			Narration: "NEFT CR-ACME ₹ refund",
			Credit:    dec("25000"),
			Balance:   dec("125000.50"),
			Net:       dec("25000"),
			PeriodKey: "2023-04",
			Branch:    "MG Road",
			IFSC:      "HDFC0001234",
		},
		{
			Timestamp: time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC),
			Narration: "ATM WDL",
			Debit:     dec("5000"),
			Balance:   dec("120000.50"),
			Net:       dec("-5000"),
			PeriodKey: "2023-04",
		},
	}
}

func TestWriteLedger_HeaderMatchesStatement(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLedger(&buf, sampleTxns(), false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Transaction Date,Narration,Debit Amount,Credit Amount,Line Balance", lines[0])
	assert.True(t, utf8.ValidString(buf.String()))
	assert.Contains(t, buf.String(), "₹", "narration survives as UTF-8")
}

func TestWriteLedger_BranchVariantHeader(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLedger(&buf, sampleTxns(), true)
	require.NoError(t, err)

	first := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Equal(t, "Transaction Date,Narration,Debit Amount,Credit Amount,Line Balance,Branch Name/ IFSC Code", first)
	assert.Contains(t, buf.String(), "MG Road - HDFC0001234")
}

func TestWriteLedger_RoundTripsThroughIngest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, sampleTxns(), true))

	ledger, err := statement.Read(&buf)
	require.NoError(t, err)
	require.Len(t, ledger.Transactions, 2)
	assert.True(t, ledger.HasBranch)

	got := ledger.Transactions[0]
	want := sampleTxns()[0]
	assert.True(t, got.Timestamp.Equal(want.Timestamp))
	assert.Equal(t, want.Narration, got.Narration)
	assert.True(t, got.Credit.Equal(want.Credit))
	assert.True(t, got.Balance.Equal(want.Balance))
	assert.Equal(t, want.Branch, got.Branch)
	assert.Equal(t, want.IFSC, got.IFSC)
}

func TestWriteLedger_EmptySubset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, nil, false))

	// Header only: an empty anomaly subset still exports a valid file.
	assert.Equal(t, strings.Join(Headers(false), ",")+"\n", buf.String())
}
