package intrinsic

import (
	"context"
	"errors"
	"fmt"
)

// ErrDataUnavailable is the error kind of every data provider failure.
var ErrDataUnavailable = errors.New("data unavailable")

// DataUnavailableError details why a provider could not deliver a company's figures.
type DataUnavailableError struct {
	Ticker string
	Reason string
	Err    error // underlying error, if any
}

func (e *DataUnavailableError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Ticker, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes every DataUnavailableError match ErrDataUnavailable.
func (e *DataUnavailableError) Is(target error) bool { return target == ErrDataUnavailable }

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// Unavailable returns a DataUnavailableError for ticker.
func Unavailable(ticker, reason string, err error) error {
	return &DataUnavailableError{Ticker: ticker, Reason: reason, Err: err}
}

// FCFSource tells how the free cash flow figure was obtained.
type FCFSource string

const (
	FCFReported           FCFSource = "reported"
	FCFOperatingInvesting FCFSource = "operating+investing"
	FCFManual             FCFSource = "manual"
)

// Fundamentals are the company figures required for a valuation.
type Fundamentals struct {
	Ticker             string    `json:"ticker"`
	Name               string    `json:"name,omitempty"`
	Currency           string    `json:"currency,omitempty"`
	Price              float64   `json:"price"`
	SharesOutstanding  float64   `json:"shares_outstanding"`
	FreeCashFlow       float64   `json:"free_cash_flow"`
	FreeCashFlowSource FCFSource `json:"free_cash_flow_source"`
}

// Provider fetches the latest fundamentals of a company.
//
// Implementations must report every failure as an error matching ErrDataUnavailable.
type Provider interface {
	Fetch(ctx context.Context, ticker string) (Fundamentals, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, ticker string) (Fundamentals, error)

func (f ProviderFunc) Fetch(ctx context.Context, ticker string) (Fundamentals, error) {
	return f(ctx, ticker)
}

// FreeCashFlow applies the free cash flow policy to the figures of a cash flow statement.
//
// The reported free cash flow is used when present. Otherwise it falls back to
// operating cash flow plus investing cash flow, a rough heuristic that counts
// all investing activities as capital expenditures. nil means missing.
func FreeCashFlow(reported, operating, investing *float64) (float64, FCFSource, bool) {
	if reported != nil {
		return *reported, FCFReported, true
	}
	if operating != nil && investing != nil {
		return *operating + *investing, FCFOperatingInvesting, true
	}
	return 0, "", false
}

// Check verifies that fundamentals hold every figure a valuation requires.
//
// It never substitutes a default value for a missing one.
func (f Fundamentals) Check() error {
	switch {
	case f.Price <= 0:
		return Unavailable(f.Ticker, "no price data", nil)
	case f.SharesOutstanding <= 0:
		return Unavailable(f.Ticker, "no shares outstanding data", nil)
	case f.FreeCashFlowSource == "":
		return Unavailable(f.Ticker, "no cash flow data", nil)
	}
	return nil
}
