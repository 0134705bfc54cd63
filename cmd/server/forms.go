package main

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Simplici0/batchcost/internal/pricing"
)

var errInvalidForm = errors.New("invalid form")

func parseFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be numeric: %w", field, errInvalidForm)
	}
	return value, nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := parseFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0: %w", field, errInvalidForm)
	}
	return value, nil
}

// parseOptionalNonNegativeFloat treats a blank field as 0.
func parseOptionalNonNegativeFloat(raw, field string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return parseNonNegativeFloat(raw, field)
}

func parsePositiveInt(raw, field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number: %w", field, errInvalidForm)
	}
	if value < 1 {
		return 0, fmt.Errorf("%s must be at least 1: %w", field, errInvalidForm)
	}
	return value, nil
}

func parseYieldPercent(raw, field string) (float64, error) {
	value, err := parseFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value <= 0 || value > 100 {
		return 0, fmt.Errorf("%s must be greater than 0 and at most 100: %w", field, errInvalidForm)
	}
	return value, nil
}

// parseCostInputsForm reads ingredient lines from repeated ingredient_name / ingredient_cost fields.
// Labor is either labor_cost or labor_hours x labor_rate.
func parseCostInputsForm(r *http.Request) (pricing.CostInputs, error) {
	var in pricing.CostInputs

	names := r.Form["ingredient_name"]
	costs := r.Form["ingredient_cost"]
	if len(names) != len(costs) {
		return in, fmt.Errorf("ingredient_name and ingredient_cost must pair up: %w", errInvalidForm)
	}
	in.Ingredients = make([]pricing.Ingredient, 0, len(costs))
	for i := range costs {
		name := strings.TrimSpace(names[i])
		if name == "" {
			return in, fmt.Errorf("ingredient_name[%d] is required: %w", i, errInvalidForm)
		}
		cost, err := parseNonNegativeFloat(costs[i], fmt.Sprintf("ingredient_cost[%d]", i))
		if err != nil {
			return in, err
		}
		in.Ingredients = append(in.Ingredients, pricing.Ingredient{Name: name, Cost: cost})
	}

	var err error
	if hours := r.FormValue("labor_hours"); strings.TrimSpace(hours) != "" {
		h, err := parseNonNegativeFloat(hours, "labor_hours")
		if err != nil {
			return in, err
		}
		rate, err := parseNonNegativeFloat(r.FormValue("labor_rate"), "labor_rate")
		if err != nil {
			return in, err
		}
		in.LaborCost = pricing.LaborCost(h, rate)
	} else if in.LaborCost, err = parseOptionalNonNegativeFloat(r.FormValue("labor_cost"), "labor_cost"); err != nil {
		return in, err
	}

	if in.OverheadCost, err = parseOptionalNonNegativeFloat(r.FormValue("overhead_cost"), "overhead_cost"); err != nil {
		return in, err
	}
	if in.BatchSize, err = parsePositiveInt(r.FormValue("batch_size"), "batch_size"); err != nil {
		return in, err
	}
	if in.YieldPercentage, err = parseYieldPercent(r.FormValue("yield_percentage"), "yield_percentage"); err != nil {
		return in, err
	}

	return in, nil
}

func parseStrategyForm(r *http.Request) (pricing.Strategy, error) {
	percent, err := parseNonNegativeFloat(r.FormValue("strategy_percent"), "strategy_percent")
	if err != nil {
		return pricing.Strategy{}, err
	}
	kind := r.FormValue("strategy")
	if strings.TrimSpace(kind) == "" {
		kind = string(pricing.KindMarkup)
	}
	return pricing.ParseStrategy(kind, percent)
}

// parseOverheadForm leaves batches_per_month below 1 to the allocator, which clamps it.
func parseOverheadForm(r *http.Request) (pricing.OverheadInputs, error) {
	var in pricing.OverheadInputs

	var err error
	if in.Rent, err = parseOptionalNonNegativeFloat(r.FormValue("rent"), "rent"); err != nil {
		return in, err
	}
	if in.Utilities, err = parseOptionalNonNegativeFloat(r.FormValue("utilities"), "utilities"); err != nil {
		return in, err
	}
	if in.Marketing, err = parseOptionalNonNegativeFloat(r.FormValue("marketing"), "marketing"); err != nil {
		return in, err
	}
	if in.Maintenance, err = parseOptionalNonNegativeFloat(r.FormValue("maintenance"), "maintenance"); err != nil {
		return in, err
	}
	if in.BatchesPerMonth, err = parseNonNegativeFloat(r.FormValue("batches_per_month"), "batches_per_month"); err != nil {
		return in, err
	}
	if in.PackagingPerUnit, err = parseOptionalNonNegativeFloat(r.FormValue("packaging_per_unit"), "packaging_per_unit"); err != nil {
		return in, err
	}
	if in.BatchSize, err = parsePositiveInt(r.FormValue("batch_size"), "batch_size"); err != nil {
		return in, err
	}

	return in, nil
}

func parseSummaryForm(r *http.Request, prefix string) (pricing.Summary, error) {
	var s pricing.Summary

	var err error
	if s.TotalCost, err = parseFloat(r.FormValue(prefix+"total_cost"), prefix+"total_cost"); err != nil {
		return s, err
	}
	if s.SuggestedPrice, err = parseFloat(r.FormValue(prefix+"suggested_price"), prefix+"suggested_price"); err != nil {
		return s, err
	}
	if s.ProfitMargin, err = parseFloat(r.FormValue(prefix+"profit_margin"), prefix+"profit_margin"); err != nil {
		return s, err
	}

	return s, nil
}
