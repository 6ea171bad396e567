package statement

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestParseDate_DayFirstConvention(t *testing.T) {
	// "03-04-2023" is ambiguous; the pinned convention reads it as
	// 3 April, never 4 March.
	got, err := ParseDate("03-04-2023")
	require.NoError(t, err)
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 3, got.Day())
	assert.Equal(t, 2023, got.Year())
}

func TestParseDate_MixedFormats(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"03-04-2023", time.Date(2023, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"03/04/2023", time.Date(2023, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"2023-04-03", time.Date(2023, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"03-04-2023 14:30:05", time.Date(2023, 4, 3, 14, 30, 5, 0, time.UTC)},
		{"2023-04-03 14:30:05", time.Date(2023, 4, 3, 14, 30, 5, 0, time.UTC)},
		{"03-Apr-2023", time.Date(2023, 4, 3, 0, 0, 0, 0, time.UTC)},
		{" 03-04-2023 ", time.Date(2023, 4, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		require.NoError(t, err, "parsing %q", tc.in)
		assert.True(t, tc.want.Equal(got), "parsing %q: got %s", tc.in, got)
	}
}

func TestParseDate_Unparseable(t *testing.T) {
	for _, in := range []string{"", "yesterday", "31-31-2023", "2023"} {
		_, err := ParseDate(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCoerceAmount(t *testing.T) {
	var coerced int

	assert.True(t, CoerceAmount("1500.50", &coerced).Equal(dec("1500.50")))
	assert.True(t, CoerceAmount(" 42 ", &coerced).Equal(dec("42")))
	assert.Zero(t, coerced)

	// Blank and junk cells coerce to zero and are counted, never errors.
	assert.True(t, CoerceAmount("", &coerced).IsZero())
	assert.True(t, CoerceAmount("N/A", &coerced).IsZero())
	assert.True(t, CoerceAmount("1,500.50", &coerced).IsZero())
	assert.Equal(t, 3, coerced)
}

func TestRead_CoercionCounted(t *testing.T) {
	csv := basicHeader + "\n" +
		"03-04-2023,ok,abc,,100\n" + // two coerced cells
		"04-04-2023,ok,10,0,90\n"

	ledger, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, ledger.Coerced)
	assert.True(t, ledger.Transactions[0].Debit.IsZero())
	assert.True(t, ledger.Transactions[0].Credit.IsZero())
	assert.True(t, ledger.Transactions[0].Net.IsZero())
}

func TestSplitBranchIFSC(t *testing.T) {
	branch, ifsc := SplitBranchIFSC("MG Road - HDFC0001234")
	assert.Equal(t, "MG Road", branch)
	assert.Equal(t, "HDFC0001234", ifsc)

	branch, ifsc = SplitBranchIFSC("Standalone Branch")
	assert.Equal(t, "Standalone Branch", branch)
	assert.Empty(t, ifsc)
}
