package pricing

import (
	"math"
	"testing"
)

func TestCompareTotals_PresetEdit(t *testing.T) {
	previous := Summary{TotalCost: 100, SuggestedPrice: 150, ProfitMargin: 33.33}
	current := Summary{TotalCost: 120, SuggestedPrice: 180, ProfitMargin: 35.0}

	d := CompareTotals(current, previous)

	for name, pair := range map[string][2]float64{
		"totalCost":      {d.TotalCost, 20},
		"suggestedPrice": {d.SuggestedPrice, 30},
		"profitMargin":   {d.ProfitMargin, 1.67},
	} {
		if math.Abs(pair[0]-pair[1]) > 0.01 {
			t.Fatalf("%s = %v, want %v", name, pair[0], pair[1])
		}
	}
}

func TestCompareTotals_IdentityAndAntisymmetry(t *testing.T) {
	a := Summary{TotalCost: 512.25, SuggestedPrice: -3, ProfitMargin: 18.4}
	b := Summary{TotalCost: 0, SuggestedPrice: 77.7, ProfitMargin: -12}

	if d := CompareTotals(a, a); d != (Deltas{}) {
		t.Fatalf("CompareTotals(a, a) = %+v, want zero", d)
	}

	ab := CompareTotals(a, b)
	ba := CompareTotals(b, a)
	if ab.TotalCost != -ba.TotalCost || ab.SuggestedPrice != -ba.SuggestedPrice || ab.ProfitMargin != -ba.ProfitMargin {
		t.Fatalf("CompareTotals not antisymmetric: %+v vs %+v", ab, ba)
	}
}

func TestSummaryOf(t *testing.T) {
	r := CalculationResult{TotalCost: 10, RecommendedPrice: 20, ProfitMarginPercent: 50}
	if got := SummaryOf(r); got != (Summary{TotalCost: 10, SuggestedPrice: 20, ProfitMargin: 50}) {
		t.Fatalf("SummaryOf = %+v", got)
	}
}
