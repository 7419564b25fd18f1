package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"estates/server/internal/export"
)

func analyseCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyse <id>...",
		Short: "Compare buildings side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := app.columns(args)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			header := make([]string, len(columns))
			for i, c := range columns {
				header[i] = c.Building.Name
			}
			fmt.Fprintf(w, "\t%s\t\n", strings.Join(header, "\t"))
			for _, row := range export.Rows(columns) {
				label := row.Label
				if row.Highlight {
					label = "* " + label
				}
				fmt.Fprintf(w, "%s\t%s\t\n", label, strings.Join(row.Values, "\t"))
			}
			return w.Flush()
		},
	}
}
