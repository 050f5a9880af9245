package renderer

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/etnz/intrinsic"
)

// Valuation is the view of a valuation result, ready to be rendered.
type Valuation struct {
	Ticker   string
	Name     string
	Currency string
	Source   string // how the figures were obtained

	Parameters intrinsic.Parameters

	Price     intrinsic.Money
	Intrinsic intrinsic.Money
	Upside    string // signed percentage, "n/a" without a current price

	BaseFCF         intrinsic.Money
	Years           []Year
	SumPV           intrinsic.Money
	TerminalValue   intrinsic.Money
	PVTerminalValue intrinsic.Money
	EnterpriseValue intrinsic.Money
	Shares          string
}

// Year is a row of the projection table.
type Year struct {
	Label string
	FCF   intrinsic.Money
	PV    intrinsic.Money
}

// Title returns the report title.
func (v *Valuation) Title() string {
	if v.Name == "" {
		return "Valuation of " + v.Ticker
	}
	return fmt.Sprintf("Valuation of %s (%s)", v.Name, v.Ticker)
}

// NewValuation builds the view of res, computed from f and p.
func NewValuation(f intrinsic.Fundamentals, p intrinsic.Parameters, res *intrinsic.ValuationResult) *Valuation {
	cur := f.Currency
	if cur == "" {
		cur = intrinsic.DefaultCurrency(f.Ticker)
	}
	v := &Valuation{
		Ticker:          f.Ticker,
		Name:            f.Name,
		Currency:        cur,
		Source:          source(f.FreeCashFlowSource),
		Parameters:      p,
		Price:           intrinsic.M(res.CurrentPrice, cur),
		Intrinsic:       intrinsic.M(res.IntrinsicValuePerShare, cur),
		Upside:          "n/a",
		BaseFCF:         intrinsic.M(f.FreeCashFlow, cur),
		SumPV:           intrinsic.M(res.SumPresentValues(), cur),
		TerminalValue:   intrinsic.M(res.TerminalValue, cur),
		PVTerminalValue: intrinsic.M(res.PVTerminalValue, cur),
		EnterpriseValue: intrinsic.M(res.EnterpriseValue, cur),
		Shares:          Count(res.SharesOutstanding),
	}
	if up, ok := res.Upside(); ok {
		v.Upside = up.SignedString()
	}
	for _, y := range res.Years {
		v.Years = append(v.Years, Year{
			Label: fmt.Sprintf("Year %d", y.Year),
			FCF:   intrinsic.M(y.ProjectedFCF, cur),
			PV:    intrinsic.M(y.PresentValue, cur),
		})
	}
	return v
}

// Fundamentals is the view of fetched fundamentals.
type Fundamentals struct {
	Ticker string
	Name   string
	Price  intrinsic.Money
	Shares string
	FCF    intrinsic.Money
	Source string
}

// Title returns the report title.
func (f *Fundamentals) Title() string {
	if f.Name == "" {
		return f.Ticker
	}
	return fmt.Sprintf("%s (%s)", f.Name, f.Ticker)
}

// NewFundamentals builds the view of f.
func NewFundamentals(f intrinsic.Fundamentals) *Fundamentals {
	cur := f.Currency
	if cur == "" {
		cur = intrinsic.DefaultCurrency(f.Ticker)
	}
	return &Fundamentals{
		Ticker: f.Ticker,
		Name:   f.Name,
		Price:  intrinsic.M(f.Price, cur),
		Shares: Count(f.SharesOutstanding),
		FCF:    intrinsic.M(f.FreeCashFlow, cur),
		Source: source(f.FreeCashFlowSource),
	}
}

func source(s intrinsic.FCFSource) string {
	switch s {
	case intrinsic.FCFReported:
		return "reported free cash flow"
	case intrinsic.FCFOperatingInvesting:
		return "operating + investing cash flows"
	case intrinsic.FCFManual:
		return "manual entry"
	}
	return string(s)
}

// counter formats integers with thousands separators.
var counter = money.NewFormatter(0, ".", ",", "", "1")

// Count formats a number of shares.
func Count(n float64) string {
	return counter.Format(int64(math.Round(n)))
}
