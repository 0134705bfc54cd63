package pricing

// Summary is the slice of a result kept in preset history for comparison.
type Summary struct {
	TotalCost      float64 `json:"totalCost" yaml:"totalCost"`
	SuggestedPrice float64 `json:"suggestedPrice" yaml:"suggestedPrice"`
	ProfitMargin   float64 `json:"profitMargin" yaml:"profitMargin"`
}

// Deltas are signed field-wise differences, current minus previous.
type Deltas struct {
	TotalCost      float64 `json:"totalCost"`
	SuggestedPrice float64 `json:"suggestedPrice"`
	ProfitMargin   float64 `json:"profitMargin"`
}

// SummaryOf extracts the comparable totals of a result.
func SummaryOf(r CalculationResult) Summary {
	return Summary{
		TotalCost:      r.TotalCost,
		SuggestedPrice: r.RecommendedPrice,
		ProfitMargin:   r.ProfitMarginPercent,
	}
}

// CompareTotals subtracts previous from current field by field. No normalization is applied.
func CompareTotals(current, previous Summary) Deltas {
	return Deltas{
		TotalCost:      current.TotalCost - previous.TotalCost,
		SuggestedPrice: current.SuggestedPrice - previous.SuggestedPrice,
		ProfitMargin:   current.ProfitMargin - previous.ProfitMargin,
	}
}
