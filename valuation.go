package intrinsic

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameters is returned when valuation inputs cannot produce a meaningful valuation.
var ErrInvalidParameters = errors.New("invalid parameters")

// DefaultHorizon is the number of explicitly projected years.
const DefaultHorizon = 5

// MaxHorizon is the longest accepted projection, in years.
const MaxHorizon = 50

// ValuationInputs holds everything the valuation engine needs.
//
// It is agnostic of where the figures come from, see NewInputs.
type ValuationInputs struct {
	BaseFCF            float64 `json:"base_fcf"`             // most recent annual free cash flow
	GrowthRate         float64 `json:"growth_rate"`          // annual FCF growth over the horizon
	DiscountRate       float64 `json:"discount_rate"`        // required return, must exceed TerminalGrowthRate
	TerminalGrowthRate float64 `json:"terminal_growth_rate"` // perpetual growth after the horizon
	HorizonYears       int     `json:"horizon_years"`
	SharesOutstanding  float64 `json:"shares_outstanding"`
	CurrentPrice       float64 `json:"current_price"` // only used for comparison
}

// YearProjection is the projected free cash flow for one year of the horizon.
type YearProjection struct {
	Year         int     `json:"year"`
	ProjectedFCF float64 `json:"projected_fcf"`
	PresentValue float64 `json:"present_value"`
}

// ValuationResult is the full build-up of a DCF valuation.
type ValuationResult struct {
	Years                  []YearProjection `json:"years"`
	TerminalValue          float64          `json:"terminal_value"`
	PVTerminalValue        float64          `json:"pv_terminal_value"`
	EnterpriseValue        float64          `json:"enterprise_value"`
	IntrinsicValuePerShare float64          `json:"intrinsic_value_per_share"`
	SharesOutstanding      float64          `json:"shares_outstanding"`
	CurrentPrice           float64          `json:"current_price"`
}

// Validate checks the inputs invariants.
//
// The discount rate must be strictly greater than the terminal growth rate,
// otherwise the Gordon growth terminal value diverges or changes sign.
func (in ValuationInputs) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"base free cash flow", in.BaseFCF},
		{"growth rate", in.GrowthRate},
		{"discount rate", in.DiscountRate},
		{"terminal growth rate", in.TerminalGrowthRate},
		{"shares outstanding", in.SharesOutstanding},
		{"current price", in.CurrentPrice},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidParameters, v.name)
		}
	}
	if in.DiscountRate <= in.TerminalGrowthRate {
		return fmt.Errorf("%w: discount rate %v must be greater than terminal growth rate %v", ErrInvalidParameters, Rate(in.DiscountRate), Rate(in.TerminalGrowthRate))
	}
	if in.SharesOutstanding <= 0 {
		return fmt.Errorf("%w: shares outstanding must be positive, got %v", ErrInvalidParameters, in.SharesOutstanding)
	}
	if in.HorizonYears < 1 || in.HorizonYears > MaxHorizon {
		return fmt.Errorf("%w: horizon must be between 1 and %d years, got %d", ErrInvalidParameters, MaxHorizon, in.HorizonYears)
	}
	return nil
}

// ComputeValuation runs a discounted cash flow valuation.
//
// The base free cash flow is compounded at a constant growth rate for each
// year of the horizon, each year is discounted at the end of the year, and a
// Gordon growth terminal value is added at the end of the last year.
// It performs no I/O: the only possible error wraps ErrInvalidParameters.
func ComputeValuation(in ValuationInputs) (*ValuationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	res := &ValuationResult{
		Years:             make([]YearProjection, 0, in.HorizonYears),
		SharesOutstanding: in.SharesOutstanding,
		CurrentPrice:      in.CurrentPrice,
	}

	fcf := in.BaseFCF
	var sumPV float64
	for t := 1; t <= in.HorizonYears; t++ {
		fcf *= 1 + in.GrowthRate
		pv := fcf / math.Pow(1+in.DiscountRate, float64(t))
		sumPV += pv
		res.Years = append(res.Years, YearProjection{Year: t, ProjectedFCF: fcf, PresentValue: pv})
	}

	// fcf is now the last projected year.
	res.TerminalValue = fcf * (1 + in.TerminalGrowthRate) / (in.DiscountRate - in.TerminalGrowthRate)
	res.PVTerminalValue = res.TerminalValue / math.Pow(1+in.DiscountRate, float64(in.HorizonYears))
	res.EnterpriseValue = sumPV + res.PVTerminalValue
	res.IntrinsicValuePerShare = res.EnterpriseValue / in.SharesOutstanding
	return res, nil
}

// SumPresentValues returns the sum of the explicitly projected years present values.
func (r *ValuationResult) SumPresentValues() float64 {
	var sum float64
	for _, y := range r.Years {
		sum += y.PresentValue
	}
	return sum
}

// Upside returns the relative difference between the intrinsic value and the current price.
//
// ok is false when there is no current price to compare with.
func (r *ValuationResult) Upside() (upside Rate, ok bool) {
	if r.CurrentPrice <= 0 {
		return 0, false
	}
	return Rate((r.IntrinsicValuePerShare - r.CurrentPrice) / r.CurrentPrice), true
}
