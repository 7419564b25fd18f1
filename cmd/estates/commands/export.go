package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"estates/server/internal/export"
)

func exportCmd(app *appContext) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <id>...",
		Short: "Write the comparison of buildings to a spreadsheet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := app.columns(args)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := export.Write(f, columns); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d buildings to %s\n", len(columns), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "analyse.xlsx", "output file")
	return cmd
}
