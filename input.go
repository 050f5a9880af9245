package intrinsic

import "fmt"

// InputSource is where the company figures of a valuation come from.
//
// It is either Fetched or Manual.
type InputSource interface {
	figures() (price, shares, fcf float64, err error)
}

// Fetched figures come from a Provider.
type Fetched struct {
	Fundamentals Fundamentals
}

func (s Fetched) figures() (float64, float64, float64, error) {
	if err := s.Fundamentals.Check(); err != nil {
		return 0, 0, 0, err
	}
	f := s.Fundamentals
	return f.Price, f.SharesOutstanding, f.FreeCashFlow, nil
}

// Manual figures are entered by the user.
type Manual struct {
	Price             float64
	SharesOutstanding float64
	FreeCashFlow      float64
}

func (s Manual) figures() (float64, float64, float64, error) {
	if s.Price < 0 {
		return 0, 0, 0, fmt.Errorf("%w: price must not be negative, got %v", ErrInvalidParameters, s.Price)
	}
	return s.Price, s.SharesOutstanding, s.FreeCashFlow, nil
}

// Fundamentals returns the manual figures as fundamentals.
func (s Manual) Fundamentals(ticker, currency string) Fundamentals {
	return Fundamentals{
		Ticker:             ticker,
		Currency:           currency,
		Price:              s.Price,
		SharesOutstanding:  s.SharesOutstanding,
		FreeCashFlow:       s.FreeCashFlow,
		FreeCashFlowSource: FCFManual,
	}
}

// NewInputs normalizes figures from any source and parameters into valuation inputs.
func NewInputs(src InputSource, p Parameters) (ValuationInputs, error) {
	price, shares, fcf, err := src.figures()
	if err != nil {
		return ValuationInputs{}, err
	}
	return ValuationInputs{
		BaseFCF:            fcf,
		GrowthRate:         float64(p.GrowthRate),
		DiscountRate:       float64(p.DiscountRate),
		TerminalGrowthRate: float64(p.TerminalGrowthRate),
		HorizonYears:       p.Horizon,
		SharesOutstanding:  shares,
		CurrentPrice:       price,
	}, nil
}

// Value is a shortcut to normalize inputs and compute the valuation.
func Value(src InputSource, p Parameters) (*ValuationResult, error) {
	in, err := NewInputs(src, p)
	if err != nil {
		return nil, err
	}
	return ComputeValuation(in)
}
