package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"estates/server/internal/export"
	"estates/server/internal/finance"
)

func projectCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project <id>",
		Short: "Project income, costs and cash flow year by year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.building(args[0])
			if err != nil {
				return err
			}
			f := app.settings.Resolve(b.ID)
			projection := finance.NewProjection(*b, finance.ProjectionParams{
				LeveragePct:  numericFlag(cmd, "leverage", f.LeveragePct),
				InflationPct: numericFlag(cmd, "inflation", app.cfg.Finance.DefaultInflationPct),
				RatePct:      numericFlag(cmd, "rate", f.RatePct),
				Years:        finance.ProjectionYears(numericFlag(cmd, "years", float64(app.cfg.Finance.DefaultProjectionYears))),
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "Year\tIncome\tCosts\tProfit before interest\tInterest\tCash flow\t")
			for y := range projection.All() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
					y.Year,
					export.FormatWholeAmount(y.RentalIncome),
					export.FormatWholeAmount(y.TotalCosts),
					export.FormatWholeAmount(y.ProfitBeforeInterest),
					export.FormatWholeAmount(y.InterestExpense),
					export.FormatWholeAmount(y.CashFlow),
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("years", "", "number of years, 1 to 60 (default $DEFAULT_PROJECTION_YEARS)")
	cmd.Flags().String("inflation", "", "yearly inflation in percent (default $DEFAULT_INFLATION_PCT)")
	cmd.Flags().String("rate", "", "fixed interest rate in percent (default: the building's financing)")
	cmd.Flags().String("leverage", "", "leverage in percent (default: the building's financing)")
	return cmd
}
