package pricing

import (
	"fmt"
	"math"
)

// minEffectiveUnits keeps the per-unit division finite when a vanishingly small yield slips past validation.
const minEffectiveUnits = 1e-9

// Ingredient is a single ingredient line of a batch.
type Ingredient struct {
	Name string  `json:"name" yaml:"name"`
	Cost float64 `json:"cost" yaml:"cost"`
}

// CostInputs holds the direct costs of one production batch.
type CostInputs struct {
	Ingredients     []Ingredient `json:"ingredients" yaml:"ingredients"`
	LaborCost       float64      `json:"laborCost" yaml:"laborCost"`
	OverheadCost    float64      `json:"overheadCost" yaml:"overheadCost"`
	BatchSize       int          `json:"batchSize" yaml:"batchSize"`
	YieldPercentage float64      `json:"yieldPercentage" yaml:"yieldPercentage"`
}

// Breakdown is the per-unit share of each cost category.
type Breakdown struct {
	Ingredients float64 `json:"ingredients"`
	Labor       float64 `json:"labor"`
	Overhead    float64 `json:"overhead"`
}

// CostAggregate is the output of AggregateCosts.
type CostAggregate struct {
	IngredientsTotal float64
	TotalCost        float64
	EffectiveUnits   float64
	CostPerUnit      float64
	Breakdown        Breakdown
}

// Validate rejects negative amounts and a yield or batch size that would leave no sellable units.
func (in CostInputs) Validate() error {
	for i, ing := range in.Ingredients {
		if err := checkAmount(fmt.Sprintf("ingredients[%d].cost", i), ing.Cost); err != nil {
			return err
		}
	}
	if err := checkAmount("laborCost", in.LaborCost); err != nil {
		return err
	}
	if err := checkAmount("overheadCost", in.OverheadCost); err != nil {
		return err
	}
	return checkYieldAndBatch(in.BatchSize, in.YieldPercentage)
}

// IngredientsTotal sums the cost of every ingredient line.
func (in CostInputs) IngredientsTotal() float64 {
	total := 0.0
	for _, ing := range in.Ingredients {
		total += ing.Cost
	}
	return total
}

// AggregateCosts totals the batch and divides it across the sellable units left after yield loss.
// It returns ErrDegenerateYieldOrBatch rather than dividing by a zero or negative unit count,
// and ErrNegativeInput when the batch total is not a finite number.
func AggregateCosts(in CostInputs) (CostAggregate, error) {
	if err := checkYieldAndBatch(in.BatchSize, in.YieldPercentage); err != nil {
		return CostAggregate{}, err
	}

	ingredients := in.IngredientsTotal()
	total := ingredients + in.LaborCost + in.OverheadCost
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return CostAggregate{}, fmt.Errorf("totalCost = %v: %w", total, ErrNegativeInput)
	}
	units := math.Max(float64(in.BatchSize)*(in.YieldPercentage/100.0), minEffectiveUnits)

	return CostAggregate{
		IngredientsTotal: ingredients,
		TotalCost:        total,
		EffectiveUnits:   units,
		CostPerUnit:      total / units,
		Breakdown: Breakdown{
			Ingredients: ingredients / units,
			Labor:       in.LaborCost / units,
			Overhead:    in.OverheadCost / units,
		},
	}, nil
}

func checkYieldAndBatch(batchSize int, yield float64) error {
	if batchSize < 1 {
		return fmt.Errorf("batchSize = %d: %w", batchSize, ErrDegenerateYieldOrBatch)
	}
	// The negated comparison also rejects NaN.
	if !(yield > 0 && yield <= 100) {
		return fmt.Errorf("yieldPercentage = %v: %w", yield, ErrDegenerateYieldOrBatch)
	}
	return nil
}
