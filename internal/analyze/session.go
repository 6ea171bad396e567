package analyze

import (
	"time"

	"github.com/google/uuid"

	"github.com/fintrace-dev/fintrace/internal/model"
	"github.com/fintrace-dev/fintrace/internal/statement"
)

// Params tunes one analysis session.
type Params struct {
	StructuringTolerance float64 // fraction of the anchor amount, default 0.01
	StructuringMinCount  int     // members needed to emit a group
	Contamination        float64 // expected outlier fraction, a fixed prior
	Seed                 int64
	LargePercentile      float64 // strict cut for the large-transaction flag
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		StructuringTolerance: 0.01,
		StructuringMinCount:  3,
		Contamination:        0.10,
		Seed:                 42,
		LargePercentile:      0.95,
	}
}

// Session is one batch analysis over an immutable ledger snapshot. It owns a
// working copy of the transactions, annotated with category and counterparty
// at construction, and memoizes every derived view. Filtering produces a new
// session; nothing is shared or incrementally updated across sessions, and
// the outlier model refits from scratch each time.
type Session struct {
	id      string
	params  Params
	txns    []model.Transaction
	coerced int
	branch  bool

	summary        *model.Summary
	monthly        []model.MonthlyActivity
	hourly         []model.HourCount
	large          []model.Transaction
	dupes          []model.Transaction
	counterparties []model.CounterpartyStat
	structured     []model.StructuredGroup
	structuredDone bool
	anomaly        *AnomalyResult
}

// NewSession copies the ledger and annotates each transaction.
func NewSession(ledger *statement.Ledger, params Params) *Session {
	txns := make([]model.Transaction, len(ledger.Transactions))
	copy(txns, ledger.Transactions)
	for i := range txns {
		txns[i].Category = Categorize(txns[i].Narration)
		txns[i].Counterparty = ExtractCounterparty(txns[i].Narration)
	}
	return &Session{
		id:      uuid.NewString(),
		params:  params,
		txns:    txns,
		coerced: ledger.Coerced,
		branch:  ledger.HasBranch,
	}
}

// ID identifies the session in logs and diagnostics.
func (s *Session) ID() string { return s.id }

// Transactions returns the annotated ledger in statement order. Callers must
// treat the slice as read-only.
func (s *Session) Transactions() []model.Transaction { return s.txns }

// CoercionCount reports how many amount cells were coerced to zero when the
// underlying statement was normalized. It is a statement-level diagnostic:
// sessions filtered from this one keep the whole statement's count.
func (s *Session) CoercionCount() int { return s.coerced }

// HasBranch reports whether the ledger carries branch/IFSC data.
func (s *Session) HasBranch() bool { return s.branch }

// Summary returns the headline totals.
func (s *Session) Summary() model.Summary {
	if s.summary == nil {
		sum := Summarize(s.txns)
		s.summary = &sum
	}
	return *s.summary
}

// Monthly returns the monthly rollup, period ascending.
func (s *Session) Monthly() []model.MonthlyActivity {
	if s.monthly == nil {
		s.monthly = MonthlyRollup(s.txns)
	}
	return s.monthly
}

// MostActiveMonth returns the busiest rollup row.
func (s *Session) MostActiveMonth() (model.MonthlyActivity, bool) {
	return MostActiveMonth(s.Monthly())
}

// Hourly returns the hour-of-day histogram.
func (s *Session) Hourly() []model.HourCount {
	if s.hourly == nil {
		s.hourly = HourlyHistogram(s.txns)
	}
	return s.hourly
}

// Large returns the transactions strictly above the per-column percentile.
func (s *Session) Large() []model.Transaction {
	if s.large == nil {
		s.large = LargeTransactions(s.txns, s.params.LargePercentile)
	}
	return s.large
}

// Duplicates returns the shared-amount round-trip candidates.
func (s *Session) Duplicates() []model.Transaction {
	if s.dupes == nil {
		s.dupes = DuplicateAmounts(s.txns)
	}
	return s.dupes
}

// Counterparties returns counterparty stats ranked by count descending.
func (s *Session) Counterparties() []model.CounterpartyStat {
	if s.counterparties == nil {
		s.counterparties = FrequentCounterparties(s.txns)
	}
	return s.counterparties
}

// Structured returns the near-equal-amount debit groups.
func (s *Session) Structured() []model.StructuredGroup {
	if !s.structuredDone {
		s.structured = DetectStructuring(s.txns, s.params.StructuringTolerance, s.params.StructuringMinCount)
		s.structuredDone = true
	}
	return s.structured
}

// Anomalies fits the outlier model on first call, marks the flagged
// transactions on the session's working copy, and returns the anomalous
// subset in statement order.
func (s *Session) Anomalies() []model.Transaction {
	res := s.fitAnomalies()
	var out []model.Transaction
	for i := range s.txns {
		if res.Flagged[i] {
			out = append(out, s.txns[i])
		}
	}
	return out
}

// AnomalyScores returns the per-record isolation scores, ledger-aligned.
func (s *Session) AnomalyScores() []float64 {
	return s.fitAnomalies().Scores
}

func (s *Session) fitAnomalies() *AnomalyResult {
	if s.anomaly == nil {
		res := FitAnomalies(s.txns, s.params.Contamination, s.params.Seed)
		for i := range s.txns {
			s.txns[i].Anomalous = res.Flagged[i]
			s.txns[i].Scored = true
		}
		s.anomaly = &res
	}
	return s.anomaly
}

// Filter builds a fresh session over the rows whose calendar date falls in
// [from, to], inclusive. Every view recomputes and the outlier model refits
// on the subset.
func (s *Session) Filter(from, to time.Time) *Session {
	sub := &statement.Ledger{HasBranch: s.branch, Coerced: s.coerced}
	for _, t := range s.txns {
		d := dateOnly(t.Timestamp)
		if d.Before(dateOnly(from)) || d.After(dateOnly(to)) {
			continue
		}
		// Reset per-session annotations; the new session re-derives them.
		t.Anomalous = false
		t.Scored = false
		sub.Transactions = append(sub.Transactions, t)
	}
	return NewSession(sub, s.params)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
