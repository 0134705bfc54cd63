package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Simplici0/batchcost/internal/preset"
	"github.com/Simplici0/batchcost/internal/pricing"
)

const defaultPresetName = "Sample: chocolate chip cookies"

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Presets is the subset of preset.Store the seed needs.
type Presets interface {
	FindByName(ctx context.Context, name string) (preset.Preset, error)
	Create(ctx context.Context, name string, inputs pricing.CostInputs, strategy pricing.Strategy) (preset.Preset, error)
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, presets Presets) (Stats, error) {
	stats := Stats{}

	if err := ensureSamplePreset(ctx, presets, &stats); err != nil {
		return Stats{}, err
	}

	return stats, nil
}

// SampleInputs is a 48-cookie batch with 10% loss and overhead from a small home kitchen.
func SampleInputs() pricing.CostInputs {
	overhead := pricing.AllocateOverhead(pricing.OverheadInputs{
		Rent:             4000,
		Utilities:        1200,
		Marketing:        500,
		Maintenance:      300,
		BatchesPerMonth:  20,
		PackagingPerUnit: 2,
		BatchSize:        48,
	})

	return pricing.CostInputs{
		Ingredients: []pricing.Ingredient{
			{Name: "flour", Cost: 55},
			{Name: "butter", Cost: 180},
			{Name: "sugar", Cost: 40},
			{Name: "chocolate chips", Cost: 220},
			{Name: "eggs", Cost: 48},
		},
		LaborCost:       pricing.LaborCost(3, 60),
		OverheadCost:    overhead.Total,
		BatchSize:       48,
		YieldPercentage: 90,
	}
}

func ensureSamplePreset(ctx context.Context, presets Presets, stats *Stats) error {
	_, err := presets.FindByName(ctx, defaultPresetName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, preset.ErrNotFound) {
		return fmt.Errorf("check sample preset existence: %w", err)
	}

	strategy, err := pricing.Markup(60)
	if err != nil {
		return fmt.Errorf("build sample strategy: %w", err)
	}
	if _, err := presets.Create(ctx, defaultPresetName, SampleInputs(), strategy); err != nil {
		return fmt.Errorf("insert sample preset: %w", err)
	}
	stats.Inserts++
	return nil
}
