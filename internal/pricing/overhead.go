package pricing

import (
	"fmt"
	"math"
)

// OverheadInputs are the monthly fixed expenses and packaging cost entered for overhead allocation.
type OverheadInputs struct {
	Rent             float64 `json:"rent" yaml:"rent"`
	Utilities        float64 `json:"utilities" yaml:"utilities"`
	Marketing        float64 `json:"marketing" yaml:"marketing"`
	Maintenance      float64 `json:"maintenance" yaml:"maintenance"`
	BatchesPerMonth  float64 `json:"batchesPerMonth" yaml:"batchesPerMonth"`
	PackagingPerUnit float64 `json:"packagingPerUnit" yaml:"packagingPerUnit"`
	BatchSize        int     `json:"batchSize" yaml:"batchSize"`
}

// OverheadAllocation is the per-batch overhead derived from OverheadInputs.
type OverheadAllocation struct {
	FixedPerBatch  float64 `json:"fixedPerBatch"`
	PackagingTotal float64 `json:"packagingTotal"`
	Total          float64 `json:"total"`
}

// Validate rejects negative amounts. It does not reject BatchesPerMonth below 1; AllocateOverhead clamps it.
func (in OverheadInputs) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"rent", in.Rent},
		{"utilities", in.Utilities},
		{"marketing", in.Marketing},
		{"maintenance", in.Maintenance},
		{"batchesPerMonth", in.BatchesPerMonth},
		{"packagingPerUnit", in.PackagingPerUnit},
		{"batchSize", float64(in.BatchSize)},
	}
	for _, f := range fields {
		if err := checkAmount(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// AllocateOverhead spreads monthly fixed expenses over the batches produced in a month and adds
// packaging for every unit in the batch.
func AllocateOverhead(in OverheadInputs) OverheadAllocation {
	batches := math.Max(in.BatchesPerMonth, 1)
	fixed := (in.Rent + in.Utilities + in.Marketing + in.Maintenance) / batches
	packaging := in.PackagingPerUnit * float64(in.BatchSize)

	return OverheadAllocation{
		FixedPerBatch:  fixed,
		PackagingTotal: packaging,
		Total:          fixed + packaging,
	}
}

func checkAmount(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return fmt.Errorf("%s = %v: %w", name, value, ErrNegativeInput)
	}
	return nil
}
