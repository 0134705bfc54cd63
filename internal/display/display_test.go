package display

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Simplici0/batchcost/internal/pricing"
)

func TestMoneyRoundsToTwoDecimals(t *testing.T) {
	cases := map[float64]string{
		12.345:    "12.35",
		-1.005:    "-1.01",
		100.0:     "100",
		1.0 / 3.0: "0.33",
	}
	for in, want := range cases {
		if got := Money(in).String(); got != want {
			t.Fatalf("Money(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestFromResult(t *testing.T) {
	r := FromResult(pricing.CalculationResult{
		TotalCost:           600,
		CostPerUnit:         100.0 / 7.0,
		RecommendedPrice:    20,
		ProfitMarginPercent: 100.0 / 3.0,
	})

	if r.CostPerUnit.String() != "14.29" {
		t.Fatalf("costPerUnit = %s, want 14.29", r.CostPerUnit)
	}
	if r.ProfitMarginPercent.String() != "33.3" {
		t.Fatalf("profitMarginPercent = %s, want 33.3", r.ProfitMarginPercent)
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"costPerUnit":"14.29"`) {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestPercentMatchesRecommendationText(t *testing.T) {
	for _, m := range []float64{12.25, 12.35, 0.05, 99.95, 33.333} {
		if got, want := Percent(m).StringFixed(1), pricing.FormatMargin(m); got != want {
			t.Fatalf("Percent(%v) = %s, recommendation text uses %s", m, got, want)
		}
	}
}
