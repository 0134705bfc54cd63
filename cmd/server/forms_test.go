package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Simplici0/batchcost/internal/pricing"
)

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/api/calculate", nil)
	req.Form = form
	return req
}

func TestParseCostInputsForm_Success(t *testing.T) {
	form := url.Values{}
	form.Add("ingredient_name", "flour")
	form.Add("ingredient_cost", "120")
	form.Add("ingredient_name", "sugar")
	form.Add("ingredient_cost", "30.5")
	form.Set("labor_hours", "5")
	form.Set("labor_rate", "60")
	form.Set("overhead_cost", "")
	form.Set("batch_size", "50")
	form.Set("yield_percentage", "80")

	in, err := parseCostInputsForm(formRequest(form))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(in.Ingredients) != 2 || in.Ingredients[1].Cost != 30.5 {
		t.Fatalf("unexpected ingredients: %+v", in.Ingredients)
	}
	if in.LaborCost != 300 {
		t.Fatalf("laborCost = %v, want 300", in.LaborCost)
	}
	if in.OverheadCost != 0 || in.BatchSize != 50 || in.YieldPercentage != 80 {
		t.Fatalf("unexpected inputs: %+v", in)
	}
}

func TestParseCostInputsForm_Invalid(t *testing.T) {
	base := func() url.Values {
		form := url.Values{}
		form.Set("labor_cost", "10")
		form.Set("batch_size", "10")
		form.Set("yield_percentage", "100")
		return form
	}

	cases := map[string]func(url.Values){
		"non numeric labor": func(f url.Values) { f.Set("labor_cost", "abc") },
		"negative overhead": func(f url.Values) { f.Set("overhead_cost", "-1") },
		"zero batch":        func(f url.Values) { f.Set("batch_size", "0") },
		"fractional batch":  func(f url.Values) { f.Set("batch_size", "2.5") },
		"zero yield":        func(f url.Values) { f.Set("yield_percentage", "0") },
		"yield over 100":    func(f url.Values) { f.Set("yield_percentage", "101") },
		"unpaired ingredient": func(f url.Values) {
			f.Add("ingredient_name", "salt")
		},
		"blank ingredient name": func(f url.Values) {
			f.Add("ingredient_name", " ")
			f.Add("ingredient_cost", "1")
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			form := base()
			mutate(form)
			if _, err := parseCostInputsForm(formRequest(form)); !errors.Is(err, errInvalidForm) {
				t.Fatalf("err = %v, want errInvalidForm", err)
			}
		})
	}
}

func TestParseStrategyForm(t *testing.T) {
	form := url.Values{}
	form.Set("strategy", "margin")
	form.Set("strategy_percent", "35")

	s, err := parseStrategyForm(formRequest(form))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Kind() != pricing.KindMargin || s.Percent() != 35 {
		t.Fatalf("unexpected strategy: %v", s)
	}

	form.Set("strategy_percent", "100")
	if _, err := parseStrategyForm(formRequest(form)); !errors.Is(err, pricing.ErrInvalidMarginPercent) {
		t.Fatalf("err = %v, want ErrInvalidMarginPercent", err)
	}

	defaulted := url.Values{}
	defaulted.Set("strategy_percent", "20")
	s, err = parseStrategyForm(formRequest(defaulted))
	if err != nil || s.Kind() != pricing.KindMarkup {
		t.Fatalf("strategy = %v, err = %v; want markup", s, err)
	}
}

func TestParseOverheadForm_KeepsLowBatchesPerMonth(t *testing.T) {
	form := url.Values{}
	form.Set("rent", "1000")
	form.Set("batches_per_month", "0.5")
	form.Set("batch_size", "10")

	in, err := parseOverheadForm(formRequest(form))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if in.BatchesPerMonth != 0.5 {
		t.Fatalf("batchesPerMonth = %v, want 0.5", in.BatchesPerMonth)
	}
}
