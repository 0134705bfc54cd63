package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/batchcost/internal/pricing"
)

type riskFile struct {
	Thresholds *struct {
		Low  *float64 `yaml:"low"`
		Good *float64 `yaml:"good"`
	} `yaml:"thresholds"`
	Recommendations map[string][]string `yaml:"recommendations"`
}

// LoadRiskConfig reads risk thresholds and recommendation templates from a YAML file.
// An empty path returns pricing.DefaultRiskConfig. Keys absent from the file keep their defaults.
func LoadRiskConfig(path string) (pricing.RiskConfig, error) {
	cfg := pricing.DefaultRiskConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return pricing.RiskConfig{}, fmt.Errorf("read risk config %s: %w", path, err)
	}

	var f riskFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return pricing.RiskConfig{}, fmt.Errorf("parse risk config %s: %w", path, err)
	}

	if f.Thresholds != nil {
		if f.Thresholds.Low != nil {
			cfg.Thresholds.Low = *f.Thresholds.Low
		}
		if f.Thresholds.Good != nil {
			cfg.Thresholds.Good = *f.Thresholds.Good
		}
	}

	for name, templates := range f.Recommendations {
		level := pricing.RiskLevel(name)
		if _, ok := cfg.Recommendations[level]; !ok {
			return pricing.RiskConfig{}, fmt.Errorf("risk config %s: unknown risk level %q", path, name)
		}
		if len(templates) != 3 {
			return pricing.RiskConfig{}, fmt.Errorf("risk config %s: %q needs 3 recommendations, got %d", path, name, len(templates))
		}
		cfg.Recommendations[level] = [3]string{templates[0], templates[1], templates[2]}
	}

	if err := cfg.Validate(); err != nil {
		return pricing.RiskConfig{}, fmt.Errorf("risk config %s: %w", path, err)
	}
	return cfg, nil
}
