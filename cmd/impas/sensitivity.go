package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"Impas/internal/calc/money"
	"Impas/internal/calc/sensitivity"

	"github.com/spf13/cobra"
)

func newSensitivityCmd() *cobra.Command {
	var in sensitivity.Input

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Print break-even units across a price range",
		Long: `Prices --low through --high are in thousands, so --low 25 --high 75
covers Rp25,000 to Rp75,000 in steps of Rp1,000.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := sensitivity.Calculate(in)
			if err != nil {
				return err
			}
			return writeSensitivity(cmd.OutOrStdout(), res.Rows)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.FixedCost, "fixed", 0, "fixed cost")
	f.Float64Var(&in.VariableCostPerUnit, "variable", 0, "variable cost per unit")
	f.IntVar(&in.PriceLow, "low", 0, "lowest price, in thousands")
	f.IntVar(&in.PriceHigh, "high", 0, "highest price, in thousands")
	cmd.MarkFlagRequired("fixed")
	cmd.MarkFlagRequired("low")
	cmd.MarkFlagRequired("high")
	return cmd
}

func writeSensitivity(w io.Writer, rows []sensitivity.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Price\tBreak-even units\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", formatPrice(row.Price), row.Units.Format(money.Units))
	}
	return tw.Flush()
}
