package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// RiskLevel is the profitability risk tier derived from a profit margin.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// MarginPlaceholder is replaced in recommendation templates by the margin rounded to one decimal.
const MarginPlaceholder = "{margin}"

// Thresholds split margins into risk tiers: below Low is high risk, above Good is low risk,
// and both bounds themselves are medium.
type Thresholds struct {
	Low  float64 `json:"low" yaml:"low"`
	Good float64 `json:"good" yaml:"good"`
}

// RiskConfig carries the thresholds and recommendation templates used by Classify and Recommend.
type RiskConfig struct {
	Thresholds      Thresholds
	Recommendations map[RiskLevel][3]string
}

// Assessment is the risk tier of a result and the guidance for it.
type Assessment struct {
	Level           RiskLevel `json:"riskLevel"`
	Recommendations []string  `json:"recommendations"`
}

// DefaultRiskConfig returns the built-in thresholds (15 / 25) and templates.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		Thresholds: Thresholds{Low: 15, Good: 25},
		Recommendations: map[RiskLevel][3]string{
			RiskHigh: {
				"Your profit margin of {margin}% is below a safe level. Consider raising your selling price.",
				"Review your ingredient suppliers. Buying in bulk or switching suppliers can lower your cost per unit.",
				"Check how overhead is allocated to this batch so fixed expenses are not under-counted.",
			},
			RiskMedium: {
				"Your profit margin of {margin}% is acceptable. Look for small savings in ingredient usage and waste.",
				"Improve production efficiency: larger batches spread fixed overhead across more units.",
				"Raising yield lowers your cost per sellable unit without changing the price.",
			},
			RiskLow: {
				"Your profit margin of {margin}% is healthy. Consider reinvesting profits into equipment or marketing.",
				"Offer volume discounts to wholesale or repeat buyers to grow sales.",
				"Use this batch as a pricing benchmark for new products.",
			},
		},
	}
}

// Validate checks that the thresholds are ordered and every tier has templates.
func (c RiskConfig) Validate() error {
	if c.Thresholds.Low > c.Thresholds.Good {
		return fmt.Errorf("risk thresholds: low %v exceeds good %v", c.Thresholds.Low, c.Thresholds.Good)
	}
	for _, level := range []RiskLevel{RiskHigh, RiskMedium, RiskLow} {
		if _, ok := c.Recommendations[level]; !ok {
			return fmt.Errorf("risk recommendations: missing %q templates", level)
		}
	}
	return nil
}

// Classify maps a margin percentage to a risk tier. Zero, negative and NaN margins are high risk.
func (c RiskConfig) Classify(margin float64) RiskLevel {
	switch {
	case math.IsNaN(margin), margin < c.Thresholds.Low:
		return RiskHigh
	case margin <= c.Thresholds.Good:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Recommend renders the three guidance strings for a tier. An unrecognized tier yields an empty slice.
func (c RiskConfig) Recommend(margin float64, level RiskLevel) []string {
	templates, ok := c.Recommendations[level]
	if !ok {
		return []string{}
	}

	pct := FormatMargin(margin)
	out := make([]string, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, strings.ReplaceAll(tpl, MarginPlaceholder, pct))
	}
	return out
}

// Assess classifies a result's margin and renders the matching recommendations.
func (c RiskConfig) Assess(result CalculationResult) Assessment {
	level := c.Classify(result.ProfitMarginPercent)
	return Assessment{
		Level:           level,
		Recommendations: c.Recommend(result.ProfitMarginPercent, level),
	}
}

// FormatMargin renders a margin percentage with one decimal, rounding half away from zero.
func FormatMargin(margin float64) string {
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		return fmt.Sprint(margin)
	}
	return decimal.NewFromFloat(margin).Round(1).StringFixed(1)
}
