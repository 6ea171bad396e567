package analyze

import (
	"github.com/shopspring/decimal"

	"github.com/fintrace-dev/fintrace/internal/model"
)

// DetectStructuring surfaces potential structuring: for every distinct
// non-zero debit amount, it collects the transactions whose debit lies
// within amount*tolerance of it and emits a group when at least minCount
// qualify. Groups anchored at nearby amounts overlap on purpose; an
// investigative view favors recall over precision. Output order follows
// the first appearance of each anchor amount, so the detection is
// deterministic for a fixed ledger.
func DetectStructuring(txns []model.Transaction, tolerance float64, minCount int) []model.StructuredGroup {
	tol := decimal.NewFromFloat(tolerance)

	seen := make(map[string]struct{})
	var anchors []decimal.Decimal
	for _, t := range txns {
		if t.Debit.Sign() <= 0 {
			continue
		}
		key := t.Debit.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		anchors = append(anchors, t.Debit)
	}

	var groups []model.StructuredGroup
	for _, amount := range anchors {
		band := amount.Mul(tol)

		var g model.StructuredGroup
		for _, t := range txns {
			if t.Debit.Sub(amount).Abs().GreaterThan(band) {
				continue
			}
			if g.Count == 0 || t.Timestamp.Before(g.Start) {
				g.Start = t.Timestamp
			}
			if g.Count == 0 || t.Timestamp.After(g.End) {
				g.End = t.Timestamp
			}
			g.Count++
			g.Total = g.Total.Add(t.Debit)
		}

		if g.Count >= minCount {
			g.Amount = amount
			groups = append(groups, g)
		}
	}
	return groups
}
