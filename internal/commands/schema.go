package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrace-dev/fintrace/internal/statement"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the expected statement columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Required columns:")
			for _, c := range statement.RequiredColumns {
				fmt.Fprintf(out, "  %s\n", c)
			}
			fmt.Fprintln(out, "Optional columns:")
			fmt.Fprintf(out, "  %s (split on \" - \" into branch name and IFSC code)\n", statement.ColBranchIFSC)
			return nil
		},
	}
}
