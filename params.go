package intrinsic

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"
)

// RateStep is the granularity of all valuation rates.
const RateStep Rate = 0.01

// RateRange is the admissible range of a rate parameter.
// A zero Min and Max means unbounded.
type RateRange struct {
	Min, Max Rate
}

func (rr RateRange) bounded() bool { return rr.Min != 0 || rr.Max != 0 }

// Contains reports whether r is within the range bounds.
func (rr RateRange) Contains(r Rate) bool {
	if !rr.bounded() {
		return true
	}
	return (r > rr.Min || r.Equal(rr.Min)) && (r < rr.Max || r.Equal(rr.Max))
}

// Ranges of the user adjustable parameters.
var (
	DiscountRateRange = RateRange{Min: 0.01, Max: 0.20}
	GrowthRateRange   = RateRange{Min: -0.10, Max: 0.20}
	// terminal growth is only constrained by the discount rate.
	TerminalGrowthRateRange = RateRange{}
)

// Parameters are the user adjustable valuation parameters.
type Parameters struct {
	DiscountRate       Rate `yaml:"discount_rate" json:"discount_rate"`
	GrowthRate         Rate `yaml:"growth_rate" json:"growth_rate"`
	TerminalGrowthRate Rate `yaml:"terminal_growth_rate" json:"terminal_growth_rate"`
	Horizon            int  `yaml:"horizon" json:"horizon"`
}

// DefaultParameters returns the usual starting point: 8% required return,
// 3% growth over 5 years and 1% perpetual growth.
func DefaultParameters() Parameters {
	return Parameters{
		DiscountRate:       0.08,
		GrowthRate:         0.03,
		TerminalGrowthRate: 0.01,
		Horizon:            DefaultHorizon,
	}
}

// Quantize returns a copy of the parameters with every rate rounded to RateStep.
func (p Parameters) Quantize() Parameters {
	p.DiscountRate = p.DiscountRate.Quantize(RateStep)
	p.GrowthRate = p.GrowthRate.Quantize(RateStep)
	p.TerminalGrowthRate = p.TerminalGrowthRate.Quantize(RateStep)
	return p
}

// Check verifies that the parameters are within their admissible ranges.
//
// It does not check the discount rate against the terminal growth rate, that
// is the valuation engine's job.
func (p Parameters) Check() error {
	if !DiscountRateRange.Contains(p.DiscountRate) {
		return fmt.Errorf("%w: discount rate %v is out of range [%v, %v]", ErrInvalidParameters, p.DiscountRate, DiscountRateRange.Min, DiscountRateRange.Max)
	}
	if !GrowthRateRange.Contains(p.GrowthRate) {
		return fmt.Errorf("%w: growth rate %v is out of range [%v, %v]", ErrInvalidParameters, p.GrowthRate, GrowthRateRange.Min, GrowthRateRange.Max)
	}
	if !TerminalGrowthRateRange.Contains(p.TerminalGrowthRate) {
		return fmt.Errorf("%w: terminal growth rate %v is out of range [%v, %v]", ErrInvalidParameters, p.TerminalGrowthRate, TerminalGrowthRateRange.Min, TerminalGrowthRateRange.Max)
	}
	if p.Horizon < 1 || p.Horizon > MaxHorizon {
		return fmt.Errorf("%w: horizon must be between 1 and %d years, got %d", ErrInvalidParameters, MaxHorizon, p.Horizon)
	}
	return nil
}

// LoadParameters reads parameters from a YAML file on top of the default parameters.
//
// Fields missing from the file keep their default value. A missing file is
// not an error and returns the defaults.
func LoadParameters(path string) (Parameters, error) {
	p := DefaultParameters()
	if path == "" {
		return p, nil
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("cannot read parameters %q: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(content, &p); err != nil {
		return p, fmt.Errorf("cannot decode parameters %q: %w", path, err)
	}
	return p, nil
}

// UnmarshalYAML accepts both a fraction (0.08) and a percentage string ("8%").
func (r *Rate) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		return r.Set(s)
	}
	var f float64
	if err := unmarshal(&f); err != nil {
		return err
	}
	*r = Rate(f)
	return nil
}
