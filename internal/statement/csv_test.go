package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basicHeader = "Transaction Date,Narration,Debit Amount,Credit Amount,Line Balance"

func TestRead_Basic(t *testing.T) {
	csv := basicHeader + "\n" +
		"03-04-2023,NEFT CR-HDFC0000001-ACME CORP,0,25000,125000\n" +
		"05-04-2023,ATM WDL 9876,5000,0,120000\n"

	ledger, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ledger.Transactions, 2)
	assert.False(t, ledger.HasBranch)
	assert.Zero(t, ledger.Coerced)

	first := ledger.Transactions[0]
	assert.Equal(t, "NEFT CR-HDFC0000001-ACME CORP", first.Narration)
	assert.True(t, first.Credit.Equal(dec("25000")))
	assert.True(t, first.Debit.IsZero())
	assert.True(t, first.Balance.Equal(dec("125000")))
}

func TestRead_NetAndPeriodDerived(t *testing.T) {
	csv := basicHeader + "\n" +
		"10-06-2023,UPI-PAY,150.25,0,9849.75\n" +
		"12-06-2023,SALARY,0,50000,59849.75\n"

	ledger, err := Read(strings.NewReader(csv))
	require.NoError(t, err)

	for _, txn := range ledger.Transactions {
		assert.True(t, txn.Net.Equal(txn.Credit.Sub(txn.Debit)), "net must equal credit - debit")
		assert.Equal(t, "2023-06", txn.PeriodKey)
		assert.Equal(t, txn.Timestamp.Format("2006-01"), txn.PeriodKey)
	}
}

func TestRead_MissingColumnsFatal(t *testing.T) {
	csv := "Transaction Date,Narration,Debit Amount\n03-04-2023,x,10\n"

	_, err := Read(strings.NewReader(csv))
	require.Error(t, err)

	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []string{ColCredit, ColBalance}, serr.Missing)
	assert.Contains(t, err.Error(), "Credit Amount")
	assert.Contains(t, err.Error(), "Line Balance")
	assert.Contains(t, err.Error(), "expected schema")
}

func TestRead_ColumnOrderIndependent(t *testing.T) {
	csv := "Narration,Line Balance,Credit Amount,Debit Amount,Transaction Date\n" +
		"IMPS OUT,900,0,100,01-02-2023\n"

	ledger, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ledger.Transactions, 1)
	assert.Equal(t, "IMPS OUT", ledger.Transactions[0].Narration)
	assert.True(t, ledger.Transactions[0].Debit.Equal(dec("100")))
}

func TestRead_BadDateAbortsWholeLedger(t *testing.T) {
	csv := basicHeader + "\n" +
		"03-04-2023,ok,10,0,990\n" +
		"not-a-date,bad,10,0,980\n"

	ledger, err := Read(strings.NewReader(csv))
	require.Error(t, err)
	assert.Nil(t, ledger, "no partial ledger on a date failure")
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "not-a-date")
}

func TestRead_BranchVariant(t *testing.T) {
	csv := "Transaction Date,Narration,Debit Amount,Credit Amount,Line Balance,Branch Name/ IFSC Code\n" +
		"03-04-2023,TRANSFER TO SELF,100,0,900,MG Road - HDFC0001234\n" +
		"04-04-2023,CASH DEP,0,200,1100,Koramangala\n"

	ledger, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ledger.Transactions, 2)
	assert.True(t, ledger.HasBranch)

	assert.Equal(t, "MG Road", ledger.Transactions[0].Branch)
	assert.Equal(t, "HDFC0001234", ledger.Transactions[0].IFSC)
	assert.Equal(t, "Koramangala", ledger.Transactions[1].Branch)
	assert.Empty(t, ledger.Transactions[1].IFSC)
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header")
}

func TestRead_HeaderOnly(t *testing.T) {
	ledger, err := Read(strings.NewReader(basicHeader + "\n"))
	require.NoError(t, err)
	assert.Empty(t, ledger.Transactions)
}
