package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/batchcost/internal/display"
	"github.com/Simplici0/batchcost/internal/pricing"
)

func overheadCmd() *cobra.Command {
	var in pricing.OverheadInputs

	c := &cobra.Command{
		Use:   "overhead",
		Short: "Allocate monthly fixed expenses and packaging to one batch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := in.Validate(); err != nil {
				return err
			}
			o := display.FromOverhead(pricing.AllocateOverhead(in))
			fmt.Fprintf(cmd.OutOrStdout(), "Fixed per batch: %s\nPackaging total: %s\nTotal overhead: %s\n",
				o.FixedPerBatch.StringFixed(2), o.PackagingTotal.StringFixed(2), o.Total.StringFixed(2))
			return nil
		},
	}

	c.Flags().Float64Var(&in.Rent, "rent", 0, "Monthly rent")
	c.Flags().Float64Var(&in.Utilities, "utilities", 0, "Monthly utilities")
	c.Flags().Float64Var(&in.Marketing, "marketing", 0, "Monthly marketing")
	c.Flags().Float64Var(&in.Maintenance, "maintenance", 0, "Monthly maintenance")
	c.Flags().Float64Var(&in.BatchesPerMonth, "batches-per-month", 1, "Batches produced per month (values below 1 count as 1)")
	c.Flags().Float64Var(&in.PackagingPerUnit, "packaging-per-unit", 0, "Packaging cost per unit")
	c.Flags().IntVar(&in.BatchSize, "batch-size", 1, "Units per batch")
	return c
}

func laborCmd() *cobra.Command {
	var hours, rate float64

	c := &cobra.Command{
		Use:   "labor",
		Short: "Compute labor cost from hours and hourly rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateLabor(hours, rate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Labor cost: %s\n", display.Money(pricing.LaborCost(hours, rate)).StringFixed(2))
			return nil
		},
	}

	c.Flags().Float64Var(&hours, "hours", 0, "Hours worked on the batch")
	c.Flags().Float64Var(&rate, "rate", 0, "Hourly rate")
	return c
}
