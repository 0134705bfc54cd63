package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Simplici0/batchcost/internal/display"
	"github.com/Simplici0/batchcost/internal/pricing"
)

func calcCmd(opts *options) *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "calc",
		Short: "Compute the recommended price and risk of a batch file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			risk, err := opts.riskConfig()
			if err != nil {
				return err
			}

			in, strategy, err := loadBatchFile(file)
			if err != nil {
				return err
			}
			opts.log.Debug("batch loaded", "file", file, "ingredients", len(in.Ingredients), "strategy", strategy.String())

			result, err := pricing.Calculate(in, strategy)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), strategy, result, risk.Assess(result))
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "Batch YAML file (required)")
	_ = c.MarkFlagRequired("file")
	return c
}

func printResult(out io.Writer, strategy pricing.Strategy, r pricing.CalculationResult, a pricing.Assessment) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value string
	}{
		{"Strategy", strategy.String()},
		{"Total cost", display.Money(r.TotalCost).StringFixed(2)},
		{"Sellable units", display.Money(r.EffectiveUnits).String()},
		{"Cost per unit", display.Money(r.CostPerUnit).StringFixed(2)},
		{"  ingredients", display.Money(r.Breakdown.Ingredients).StringFixed(2)},
		{"  labor", display.Money(r.Breakdown.Labor).StringFixed(2)},
		{"  overhead", display.Money(r.Breakdown.Overhead).StringFixed(2)},
		{"Break-even price", display.Money(r.BreakEvenPrice).StringFixed(2)},
		{"Recommended price", display.Money(r.RecommendedPrice).StringFixed(2)},
		{"Profit per unit", display.Money(r.ProfitPerUnit).StringFixed(2)},
		{"Profit per batch", display.Money(r.ProfitPerBatch).StringFixed(2)},
		{"Profit margin", display.Percent(r.ProfitMarginPercent).StringFixed(1) + "%"},
		{"Risk", string(a.Level)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.label, row.value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, rec := range a.Recommendations {
		if _, err := fmt.Fprintf(out, "- %s\n", rec); err != nil {
			return err
		}
	}
	return nil
}
