package analyze

import (
	"math"
	"sort"

	"github.com/fintrace-dev/fintrace/internal/model"
)

// Summarize computes the headline totals for a ledger view. The closing
// balance is taken from the last row in statement order.
func Summarize(txns []model.Transaction) model.Summary {
	var s model.Summary
	s.Count = len(txns)
	for _, t := range txns {
		s.TotalDebit = s.TotalDebit.Add(t.Debit)
		s.TotalCredit = s.TotalCredit.Add(t.Credit)
	}
	if len(txns) > 0 {
		s.ClosingBalance = txns[len(txns)-1].Balance
	}
	return s
}

// MonthlyRollup groups the ledger by period key, ordered ascending.
func MonthlyRollup(txns []model.Transaction) []model.MonthlyActivity {
	byPeriod := make(map[string]*model.MonthlyActivity)
	for _, t := range txns {
		m, ok := byPeriod[t.PeriodKey]
		if !ok {
			m = &model.MonthlyActivity{Period: t.PeriodKey}
			byPeriod[t.PeriodKey] = m
		}
		m.Count++
		m.TotalDebit = m.TotalDebit.Add(t.Debit)
		m.TotalCredit = m.TotalCredit.Add(t.Credit)
	}

	rollup := make([]model.MonthlyActivity, 0, len(byPeriod))
	for _, m := range byPeriod {
		rollup = append(rollup, *m)
	}
	sort.Slice(rollup, func(a, b int) bool { return rollup[a].Period < rollup[b].Period })
	return rollup
}

// MostActiveMonth returns the rollup row with the highest transaction count.
// Ties resolve to the lexicographically smallest period key, which for
// "2006-01" keys is also the earliest month. ok is false for an empty view.
func MostActiveMonth(rollup []model.MonthlyActivity) (best model.MonthlyActivity, ok bool) {
	for _, m := range rollup {
		if !ok || m.Count > best.Count {
			best, ok = m, true
		}
	}
	return best, ok
}

// LargeTransactions returns the rows whose debit amount is strictly above
// the percentile of all debits in the view, or whose credit amount is
// strictly above the percentile of all credits. Thresholds are computed
// independently per column over the current view only.
func LargeTransactions(txns []model.Transaction, percentile float64) []model.Transaction {
	if len(txns) == 0 {
		return nil
	}

	debits := make([]float64, len(txns))
	credits := make([]float64, len(txns))
	for i, t := range txns {
		debits[i] = t.Debit.InexactFloat64()
		credits[i] = t.Credit.InexactFloat64()
	}

	debitCut := Percentile(debits, percentile)
	creditCut := Percentile(credits, percentile)

	var large []model.Transaction
	for _, t := range txns {
		if t.Debit.InexactFloat64() > debitCut || t.Credit.InexactFloat64() > creditCut {
			large = append(large, t)
		}
	}
	return large
}

// Percentile computes the p-th percentile (p in [0,1]) with linear
// interpolation between order statistics.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// HourlyHistogram counts transactions per hour of day. All 24 buckets are
// returned, zero counts included.
func HourlyHistogram(txns []model.Transaction) []model.HourCount {
	hist := make([]model.HourCount, 24)
	for h := range hist {
		hist[h].Hour = h
	}
	for _, t := range txns {
		hist[t.Timestamp.Hour()].Count++
	}
	return hist
}

// DuplicateAmounts returns the transactions whose debit amount or credit
// amount recurs elsewhere in the view, sorted chronologically. Shared
// amounts only approximate round-tripping: direction and time proximity
// are not checked, so the view over-reports.
func DuplicateAmounts(txns []model.Transaction) []model.Transaction {
	debitCount := make(map[string]int)
	creditCount := make(map[string]int)
	for _, t := range txns {
		debitCount[t.Debit.String()]++
		creditCount[t.Credit.String()]++
	}

	var dupes []model.Transaction
	for _, t := range txns {
		if debitCount[t.Debit.String()] > 1 || creditCount[t.Credit.String()] > 1 {
			dupes = append(dupes, t)
		}
	}
	sort.SliceStable(dupes, func(a, b int) bool {
		return dupes[a].Timestamp.Before(dupes[b].Timestamp)
	})
	return dupes
}

// FrequentCounterparties ranks counterparty keys by transaction count,
// descending. Equal counts keep first-appearance order.
func FrequentCounterparties(txns []model.Transaction) []model.CounterpartyStat {
	byKey := make(map[string]*model.CounterpartyStat)
	var order []string
	for _, t := range txns {
		s, ok := byKey[t.Counterparty]
		if !ok {
			s = &model.CounterpartyStat{Key: t.Counterparty}
			byKey[t.Counterparty] = s
			order = append(order, t.Counterparty)
		}
		s.Count++
		s.TotalDebit = s.TotalDebit.Add(t.Debit)
		s.TotalCredit = s.TotalCredit.Add(t.Credit)
	}

	stats := make([]model.CounterpartyStat, 0, len(order))
	for _, key := range order {
		stats = append(stats, *byKey[key])
	}
	sort.SliceStable(stats, func(a, b int) bool { return stats[a].Count > stats[b].Count })
	return stats
}
