package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/batchcost/internal/display"
	"github.com/Simplici0/batchcost/internal/pricing"
)

func compareCmd(opts *options) *cobra.Command {
	var current, previous string

	c := &cobra.Command{
		Use:   "compare",
		Short: "Show how cost, price and margin moved between two batch files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cur, err := summarizeFile(current)
			if err != nil {
				return err
			}
			prev, err := summarizeFile(previous)
			if err != nil {
				return err
			}
			opts.log.Debug("comparing", "current", current, "previous", previous)

			d := display.FromDeltas(pricing.CompareTotals(cur, prev))
			fmt.Fprintf(cmd.OutOrStdout(), "Total cost: %s\nSuggested price: %s\nProfit margin: %s pts\n",
				signed(d.TotalCost.StringFixed(2)), signed(d.SuggestedPrice.StringFixed(2)), signed(d.ProfitMargin.StringFixed(2)))
			return nil
		},
	}

	c.Flags().StringVar(&current, "current", "", "Batch YAML file after the edit (required)")
	c.Flags().StringVar(&previous, "previous", "", "Batch YAML file before the edit (required)")
	_ = c.MarkFlagRequired("current")
	_ = c.MarkFlagRequired("previous")
	return c
}

func summarizeFile(path string) (pricing.Summary, error) {
	in, strategy, err := loadBatchFile(path)
	if err != nil {
		return pricing.Summary{}, err
	}
	result, err := pricing.Calculate(in, strategy)
	if err != nil {
		return pricing.Summary{}, fmt.Errorf("%s: %w", path, err)
	}
	return pricing.SummaryOf(result), nil
}

func signed(s string) string {
	if len(s) > 0 && s[0] != '-' {
		return "+" + s
	}
	return s
}
