package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/diegoavarela/warren-sub012/internal/detect"
	"github.com/diegoavarela/warren-sub012/internal/model"
)

// Config represents the top-level warren.yaml configuration.
type Config struct {
	Locale    string                     `yaml:"locale"`
	Detection DetectionConfig            `yaml:"detection"`
	Totals    model.TotalDetectionConfig `yaml:"totals"`
}

// DetectionConfig tunes the total-row detector.
type DetectionConfig struct {
	KeywordWeight  float64 `yaml:"keyword_weight"`
	PositionWeight float64 `yaml:"position_weight"`
	FormatWeight   float64 `yaml:"format_weight"`
	MathWeight     float64 `yaml:"math_weight"`
	Threshold      float64 `yaml:"threshold"`
	ScanCap        int     `yaml:"scan_cap"`
	SumCheck       bool    `yaml:"sum_check"`
	SumTolerance   string  `yaml:"sum_tolerance"` // decimal string, e.g. "0.01"
}

// Load reads a warren.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the production detector settings.
func Default(localeTag string) *Config {
	opts := detect.DefaultOptions()
	return &Config{
		Locale: localeTag,
		Detection: DetectionConfig{
			KeywordWeight:  opts.KeywordWeight,
			PositionWeight: opts.PositionWeight,
			FormatWeight:   opts.FormatWeight,
			MathWeight:     opts.MathWeight,
			Threshold:      opts.Threshold,
			ScanCap:        opts.ScanCap,
			SumCheck:       opts.SumCheck,
			SumTolerance:   opts.SumTolerance.String(),
		},
		Totals: model.TotalDetectionConfig{AutoDetect: true},
	}
}

// Options converts the YAML tuning into detector options, filling any
// zero field from the defaults.
func (c *Config) Options() (detect.DetectionOptions, error) {
	opts := detect.DefaultOptions()
	d := c.Detection

	if d.KeywordWeight > 0 {
		opts.KeywordWeight = d.KeywordWeight
	}
	if d.PositionWeight > 0 {
		opts.PositionWeight = d.PositionWeight
	}
	if d.FormatWeight > 0 {
		opts.FormatWeight = d.FormatWeight
	}
	if d.MathWeight > 0 {
		opts.MathWeight = d.MathWeight
	}
	if d.Threshold > 0 {
		opts.Threshold = d.Threshold
	}
	if d.ScanCap > 0 {
		opts.ScanCap = d.ScanCap
	}
	opts.SumCheck = d.SumCheck
	if d.SumTolerance != "" {
		tol, err := decimal.NewFromString(d.SumTolerance)
		if err != nil {
			return opts, fmt.Errorf("parsing sum_tolerance %q: %w", d.SumTolerance, err)
		}
		opts.SumTolerance = tol
	}
	return opts, nil
}
