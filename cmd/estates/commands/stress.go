package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"estates/server/internal/export"
	"estates/server/internal/finance"
)

func stressCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress <id>",
		Short: "Recompute cash flow for any rate and leverage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.building(args[0])
			if err != nil {
				return err
			}
			f := app.settings.Resolve(b.ID)
			m := finance.Stress(*b,
				numericFlag(cmd, "rate", f.RatePct),
				numericFlag(cmd, "leverage", f.LeveragePct),
			)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Building\t%s\n", b.Name)
			fmt.Fprintf(w, "Interest rate\t%s\n", export.PlainPercent(m.RatePct))
			fmt.Fprintf(w, "Leverage\t%s\n", export.PlainPercent(m.LeveragePct))
			fmt.Fprintf(w, "Loan amount\t%s\n", export.FormatAmount(m.LoanAmount))
			fmt.Fprintf(w, "Down payment\t%s\n", export.FormatAmount(m.DownPayment))
			fmt.Fprintf(w, "Annual interest\t%s\n", export.FormatAmount(m.AnnualInterest))
			fmt.Fprintf(w, "Profit before interest\t%s\n", export.FormatAmount(m.ProfitBeforeInterest))
			fmt.Fprintf(w, "Cash flow\t%s\n", export.FormatAmount(m.CashFlow))
			fmt.Fprintf(w, "Cash-on-cash\t%s\n", export.FormatPercent(m.CashOnCash))
			return w.Flush()
		},
	}
	cmd.Flags().String("rate", "", "interest rate in percent (default: the building's financing)")
	cmd.Flags().String("leverage", "", "leverage in percent (default: the building's financing)")
	return cmd
}
