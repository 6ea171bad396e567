package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fintrace-dev/fintrace/internal/export"
	"github.com/fintrace-dev/fintrace/internal/logging"
	"github.com/fintrace-dev/fintrace/internal/model"
)

func newExportCommand() *cobra.Command {
	var configPath string
	var from, to string
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <statement.csv>",
		Short: "Export the analyzed ledger and anomaly subset as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			session, err := openSession(args[0], cfg, from, to)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}

			log := logging.New()
			ledgerPath := filepath.Join(outDir, cfg.Export.LedgerFile)
			anomaliesPath := filepath.Join(outDir, cfg.Export.AnomaliesFile)

			// Fit before the full-ledger export so the rows carry flags.
			anomalies := session.Anomalies()

			if err := writeCSV(ledgerPath, session.Transactions(), session.HasBranch()); err != nil {
				return err
			}
			if err := writeCSV(anomaliesPath, anomalies, session.HasBranch()); err != nil {
				return err
			}

			log.Info().
				Str("session", session.ID()).
				Str("ledger", ledgerPath).
				Str("anomalies", anomaliesPath).
				Int("anomaly_count", len(anomalies)).
				Msg("export complete")
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", ledgerPath, anomaliesPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to fintrace.yaml (defaults apply if unset)")
	cmd.Flags().StringVar(&from, "from", "", "start of date-range filter (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end of date-range filter (inclusive)")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	return cmd
}

func writeCSV(path string, txns []model.Transaction, withBranch bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteLedger(f, txns, withBranch); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
