package cli

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/batchcost/internal/pricing"
)

// batchFile is the YAML form of one batch. labor and overhead, when present, replace
// laborCost and overheadCost with values computed by the sub-calculators.
type batchFile struct {
	pricing.CostInputs `yaml:",inline"`

	Labor *struct {
		Hours float64 `yaml:"hours"`
		Rate  float64 `yaml:"rate"`
	} `yaml:"labor"`
	Overhead *pricing.OverheadInputs `yaml:"overhead"`
	Strategy struct {
		Kind    string  `yaml:"kind"`
		Percent float64 `yaml:"percent"`
	} `yaml:"strategy"`
}

func loadBatchFile(path string) (pricing.CostInputs, pricing.Strategy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return pricing.CostInputs{}, pricing.Strategy{}, fmt.Errorf("read batch file: %w", err)
	}

	var f batchFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return pricing.CostInputs{}, pricing.Strategy{}, fmt.Errorf("parse batch file %s: %w", path, err)
	}

	in := f.CostInputs
	if f.Labor != nil {
		if err := validateLabor(f.Labor.Hours, f.Labor.Rate); err != nil {
			return pricing.CostInputs{}, pricing.Strategy{}, fmt.Errorf("batch file %s labor: %w", path, err)
		}
		in.LaborCost = pricing.LaborCost(f.Labor.Hours, f.Labor.Rate)
	}
	if f.Overhead != nil {
		oh := *f.Overhead
		if oh.BatchSize == 0 {
			oh.BatchSize = in.BatchSize
		}
		if err := oh.Validate(); err != nil {
			return pricing.CostInputs{}, pricing.Strategy{}, fmt.Errorf("batch file %s overhead: %w", path, err)
		}
		in.OverheadCost = pricing.AllocateOverhead(oh).Total
	}
	if err := in.Validate(); err != nil {
		return pricing.CostInputs{}, pricing.Strategy{}, fmt.Errorf("batch file %s: %w", path, err)
	}

	kind := f.Strategy.Kind
	if kind == "" {
		kind = string(pricing.KindMarkup)
	}
	strategy, err := pricing.ParseStrategy(kind, f.Strategy.Percent)
	if err != nil {
		return pricing.CostInputs{}, pricing.Strategy{}, fmt.Errorf("batch file %s strategy: %w", path, err)
	}

	return in, strategy, nil
}

func validateLabor(hours, rate float64) error {
	for _, v := range []struct {
		name  string
		value float64
	}{{"hours", hours}, {"rate", rate}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value < 0 {
			return fmt.Errorf("%s = %v: %w", v.name, v.value, pricing.ErrNegativeInput)
		}
	}
	return nil
}
