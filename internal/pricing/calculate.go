package pricing

// CalculationResult is the full pricing outcome for one batch. Values keep full precision;
// rounding for display happens outside this package.
type CalculationResult struct {
	TotalCost           float64   `json:"totalCost"`
	EffectiveUnits      float64   `json:"effectiveUnits"`
	CostPerUnit         float64   `json:"costPerUnit"`
	BreakEvenPrice      float64   `json:"breakEvenPrice"`
	RecommendedPrice    float64   `json:"recommendedPrice"`
	ProfitPerBatch      float64   `json:"profitPerBatch"`
	ProfitPerUnit       float64   `json:"profitPerUnit"`
	ProfitMarginPercent float64   `json:"profitMarginPercent"`
	Breakdown           Breakdown `json:"breakdown"`
}

// Compose merges cost aggregation and strategy pricing into a CalculationResult.
// A zero recommended price reports a 0% margin instead of dividing by zero.
func Compose(agg CostAggregate, price StrategyPrice) CalculationResult {
	profitPerUnit := price.RecommendedPrice - agg.CostPerUnit

	margin := 0.0
	if price.RecommendedPrice != 0 {
		margin = (profitPerUnit / price.RecommendedPrice) * 100
	}

	return CalculationResult{
		TotalCost:           agg.TotalCost,
		EffectiveUnits:      agg.EffectiveUnits,
		CostPerUnit:         agg.CostPerUnit,
		BreakEvenPrice:      price.BreakEvenPrice,
		RecommendedPrice:    price.RecommendedPrice,
		ProfitPerBatch:      profitPerUnit * agg.EffectiveUnits,
		ProfitPerUnit:       profitPerUnit,
		ProfitMarginPercent: margin,
		Breakdown:           agg.Breakdown,
	}
}

// Calculate computes pricing values from batch costs and a pricing strategy.
func Calculate(in CostInputs, s Strategy) (CalculationResult, error) {
	agg, err := AggregateCosts(in)
	if err != nil {
		return CalculationResult{}, err
	}

	price, err := Resolve(agg.CostPerUnit, s)
	if err != nil {
		return CalculationResult{}, err
	}

	return Compose(agg, price), nil
}
