package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrace-dev/fintrace/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fintrace",
		Short:   "Bank-statement transaction analysis for investigations",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newSchemaCommand())

	return rootCmd
}
