package pricing

import (
	"fmt"
	"math"
	"strings"
)

// StrategyKind names the pricing formula applied to cost per unit.
type StrategyKind string

const (
	// KindMarkup adds a percentage of cost on top of cost.
	KindMarkup StrategyKind = "markup"
	// KindMargin sets price so that a percentage of it remains as profit.
	KindMargin StrategyKind = "margin"
)

// Strategy is either a markup or a margin with exactly one percent value. It can only be built
// through Markup, Margin or ParseStrategy, so a held Strategy is always valid. The zero value is
// a 0% markup.
type Strategy struct {
	kind    StrategyKind
	percent float64
}

// Markup returns a cost-anchored strategy. percent must be >= 0.
func Markup(percent float64) (Strategy, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) || percent < 0 {
		return Strategy{}, fmt.Errorf("markup %v: %w", percent, ErrInvalidMarkupPercent)
	}
	return Strategy{kind: KindMarkup, percent: percent}, nil
}

// Margin returns a price-anchored strategy. percent must be in [0, 100).
func Margin(percent float64) (Strategy, error) {
	if !(percent >= 0 && percent < 100) {
		return Strategy{}, fmt.Errorf("margin %v: %w", percent, ErrInvalidMarginPercent)
	}
	return Strategy{kind: KindMargin, percent: percent}, nil
}

// ParseStrategy builds a Strategy from a kind name as submitted by a form or file.
func ParseStrategy(kind string, percent float64) (Strategy, error) {
	switch StrategyKind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindMarkup:
		return Markup(percent)
	case KindMargin:
		return Margin(percent)
	default:
		return Strategy{}, fmt.Errorf("%q: %w", kind, ErrUnknownStrategy)
	}
}

// Kind reports which formula the strategy applies.
func (s Strategy) Kind() StrategyKind {
	if s.kind == "" {
		return KindMarkup
	}
	return s.kind
}

// Percent is the strategy's markup or margin percentage.
func (s Strategy) Percent() float64 { return s.percent }

func (s Strategy) String() string {
	return fmt.Sprintf("%s %g%%", s.Kind(), s.percent)
}

// StrategyPrice is the output of Resolve.
type StrategyPrice struct {
	BreakEvenPrice   float64
	RecommendedPrice float64
}

// Resolve applies the strategy to cost per unit. Markup and margin are not inverses of each other:
// a 50% markup on 100 is 150, a 50% margin on 100 is 200.
func Resolve(costPerUnit float64, s Strategy) (StrategyPrice, error) {
	price := StrategyPrice{BreakEvenPrice: costPerUnit}

	switch s.Kind() {
	case KindMarkup:
		price.RecommendedPrice = costPerUnit * (1 + s.percent/100.0)
	case KindMargin:
		if s.percent >= 100 {
			return StrategyPrice{}, fmt.Errorf("margin %v: %w", s.percent, ErrInvalidMarginPercent)
		}
		price.RecommendedPrice = costPerUnit / (1 - s.percent/100.0)
	default:
		return StrategyPrice{}, fmt.Errorf("%q: %w", s.kind, ErrUnknownStrategy)
	}

	return price, nil
}
