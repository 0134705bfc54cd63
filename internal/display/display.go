// Package display rounds engine results for presentation. The engine keeps full precision;
// everything shown to a person goes through here.
package display

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/batchcost/internal/pricing"
)

// Money rounds a currency amount half away from zero to two decimals.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Percent rounds a percentage half away from zero to one decimal, matching pricing.FormatMargin.
func Percent(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(1)
}

// Breakdown is a rounded pricing.Breakdown.
type Breakdown struct {
	Ingredients decimal.Decimal `json:"ingredients"`
	Labor       decimal.Decimal `json:"labor"`
	Overhead    decimal.Decimal `json:"overhead"`
}

// Result is a rounded pricing.CalculationResult.
type Result struct {
	TotalCost           decimal.Decimal `json:"totalCost"`
	EffectiveUnits      decimal.Decimal `json:"effectiveUnits"`
	CostPerUnit         decimal.Decimal `json:"costPerUnit"`
	BreakEvenPrice      decimal.Decimal `json:"breakEvenPrice"`
	RecommendedPrice    decimal.Decimal `json:"recommendedPrice"`
	ProfitPerBatch      decimal.Decimal `json:"profitPerBatch"`
	ProfitPerUnit       decimal.Decimal `json:"profitPerUnit"`
	ProfitMarginPercent decimal.Decimal `json:"profitMarginPercent"`
	Breakdown           Breakdown       `json:"breakdown"`
}

// FromResult rounds every field of r.
func FromResult(r pricing.CalculationResult) Result {
	return Result{
		TotalCost:           Money(r.TotalCost),
		EffectiveUnits:      Money(r.EffectiveUnits),
		CostPerUnit:         Money(r.CostPerUnit),
		BreakEvenPrice:      Money(r.BreakEvenPrice),
		RecommendedPrice:    Money(r.RecommendedPrice),
		ProfitPerBatch:      Money(r.ProfitPerBatch),
		ProfitPerUnit:       Money(r.ProfitPerUnit),
		ProfitMarginPercent: Percent(r.ProfitMarginPercent),
		Breakdown: Breakdown{
			Ingredients: Money(r.Breakdown.Ingredients),
			Labor:       Money(r.Breakdown.Labor),
			Overhead:    Money(r.Breakdown.Overhead),
		},
	}
}

// Overhead is a rounded pricing.OverheadAllocation.
type Overhead struct {
	FixedPerBatch  decimal.Decimal `json:"fixedPerBatch"`
	PackagingTotal decimal.Decimal `json:"packagingTotal"`
	Total          decimal.Decimal `json:"total"`
}

// FromOverhead rounds every field of o.
func FromOverhead(o pricing.OverheadAllocation) Overhead {
	return Overhead{
		FixedPerBatch:  Money(o.FixedPerBatch),
		PackagingTotal: Money(o.PackagingTotal),
		Total:          Money(o.Total),
	}
}

// Deltas is a rounded pricing.Deltas. Margin deltas are percentage points.
type Deltas struct {
	TotalCost      decimal.Decimal `json:"totalCost"`
	SuggestedPrice decimal.Decimal `json:"suggestedPrice"`
	ProfitMargin   decimal.Decimal `json:"profitMargin"`
}

// FromDeltas rounds every field of d.
func FromDeltas(d pricing.Deltas) Deltas {
	return Deltas{
		TotalCost:      Money(d.TotalCost),
		SuggestedPrice: Money(d.SuggestedPrice),
		ProfitMargin:   Money(d.ProfitMargin),
	}
}
