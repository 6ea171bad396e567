package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrace-dev/fintrace/internal/analyze"
	"github.com/fintrace-dev/fintrace/internal/config"
	"github.com/fintrace-dev/fintrace/internal/logging"
	"github.com/fintrace-dev/fintrace/internal/statement"
)

func newAnalyzeCommand() *cobra.Command {
	var configPath string
	var from, to string
	var top int

	cmd := &cobra.Command{
		Use:   "analyze <statement.csv>",
		Short: "Run a full analysis session over a statement export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if top > 0 {
				cfg.Report.TopCounterparties = top
			}

			session, err := openSession(args[0], cfg, from, to)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), session, cfg.Report.TopCounterparties)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to fintrace.yaml (defaults apply if unset)")
	cmd.Flags().StringVar(&from, "from", "", "start of date-range filter (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end of date-range filter (inclusive)")
	cmd.Flags().IntVar(&top, "top", 0, "number of counterparties to list")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// openSession reads a statement file and builds an analysis session over it,
// applying an optional inclusive date-range filter.
func openSession(path string, cfg *config.Config, from, to string) (*analyze.Session, error) {
	log := logging.New()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	ledger, err := statement.Read(f)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("statement rejected")
		return nil, err
	}

	session := analyze.NewSession(ledger, cfg.Params())
	log.Info().
		Str("session", session.ID()).
		Str("file", path).
		Int("transactions", len(session.Transactions())).
		Int("coerced_cells", session.CoercionCount()).
		Msg("statement loaded")

	if from != "" || to != "" {
		fromT, toT, err := parseRange(from, to)
		if err != nil {
			return nil, err
		}
		session = session.Filter(fromT, toT)
		log.Info().
			Str("session", session.ID()).
			Int("transactions", len(session.Transactions())).
			Msg("date filter applied")
	}
	return session, nil
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	// An open end is unbounded on that side.
	fromT := time.Time{}
	toT := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	var err error
	if from != "" {
		if fromT, err = statement.ParseDate(from); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
		}
	}
	if to != "" {
		if toT, err = statement.ParseDate(to); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
		}
	}
	return fromT, toT, nil
}

func printReport(w io.Writer, session *analyze.Session, topCounterparties int) error {
	summary := session.Summary()
	fmt.Fprintf(w, "Transactions: %d\n", summary.Count)
	fmt.Fprintf(w, "Total credits: %s\n", summary.TotalCredit.StringFixed(2))
	fmt.Fprintf(w, "Total debits: %s\n", summary.TotalDebit.StringFixed(2))
	fmt.Fprintf(w, "Closing balance: %s\n", summary.ClosingBalance.StringFixed(2))
	if session.CoercionCount() > 0 {
		fmt.Fprintf(w, "Coerced amount cells: %d\n", session.CoercionCount())
	}

	if best, ok := session.MostActiveMonth(); ok {
		fmt.Fprintf(w, "\nMost active month: %s (%d transactions)\n", best.Period, best.Count)
	}

	fmt.Fprintf(w, "\nStructured-transaction groups:\n")
	structured := session.Structured()
	if len(structured) == 0 {
		fmt.Fprintln(w, "  none detected")
	}
	for _, g := range structured {
		fmt.Fprintf(w, "  ~%s x%d (%s to %s) total %s\n",
			g.Amount.StringFixed(2), g.Count,
			g.Start.Format("2006-01-02"), g.End.Format("2006-01-02"),
			g.Total.StringFixed(2))
	}

	fmt.Fprintf(w, "\nAnomalous transactions:\n")
	anomalies := session.Anomalies()
	if len(anomalies) == 0 {
		fmt.Fprintln(w, "  none detected")
	}
	for _, t := range anomalies {
		fmt.Fprintf(w, "  %s  %-40.40s  debit %s  credit %s\n",
			t.Timestamp.Format("2006-01-02"), t.Narration,
			t.Debit.StringFixed(2), t.Credit.StringFixed(2))
	}

	fmt.Fprintf(w, "\nLarge transactions: %d\n", len(session.Large()))

	fmt.Fprintf(w, "\nTop counterparties:\n")
	for i, cp := range session.Counterparties() {
		if i >= topCounterparties {
			break
		}
		fmt.Fprintf(w, "  %-24.24s  x%d  debits %s  credits %s\n",
			cp.Key, cp.Count, cp.TotalDebit.StringFixed(2), cp.TotalCredit.StringFixed(2))
	}
	return nil
}
