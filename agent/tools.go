package agent

import (
	"context"
	"fmt"
	"math"

	"github.com/etnz/intrinsic"
	"github.com/etnz/intrinsic/docs"
	"github.com/etnz/intrinsic/renderer"
	"google.golang.org/genai"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// FundamentalsTool returns the function that fetches the figures of a ticker from p.
func FundamentalsTool(p intrinsic.Provider) *Func {
	const name = "Fundamentals"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Fundamentals fetches the current price, the shares outstanding and the latest annual free cash flow of a company.

			Tickers without an exchange suffix are US tickers, ".T" is the Tokyo Stock Exchange.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ticker": {Type: genai.TypeString, Description: "The ticker of the company, like AAPL or 7203.T."},
				},
				Required: []string{"ticker"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the company figures.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, err := stringArg(args, "ticker")
			if err != nil {
				return Failure(id, name, err)
			}
			f, err := p.Fetch(ctx, ticker)
			if err != nil {
				return Failure(id, name, err)
			}
			return Success(id, name, renderer.RenderFundamentals(renderer.NewFundamentals(f)))
		},
	}
}

// ValuateTool returns the function that values a company with figures from p.
//
// Missing parameters take their value from defaults.
func ValuateTool(p intrinsic.Provider, defaults intrinsic.Parameters) *Func {
	const name = "Valuate"
	rate := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Description: desc + " As a fraction, 0.08 is 8%. Rounded to the nearest percent."}
	}
	figure := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Description: desc + " Only to value manually entered figures."}
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Valuate estimates the intrinsic value per share of a company with a discounted cash flow model.

			` + must(docs.GetTopic("valuation")),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ticker":               {Type: genai.TypeString, Description: "The ticker of the company, like AAPL or 7203.T."},
					"discount_rate":        rate(fmt.Sprintf("The discount rate, between %v and %v.", intrinsic.DiscountRateRange.Min, intrinsic.DiscountRateRange.Max)),
					"growth_rate":          rate(fmt.Sprintf("The free cash flow growth rate, between %v and %v.", intrinsic.GrowthRateRange.Min, intrinsic.GrowthRateRange.Max)),
					"terminal_growth_rate": rate("The perpetual growth rate after the projection, lower than the discount rate."),
					"horizon":              {Type: genai.TypeInteger, Description: fmt.Sprintf("The number of projected years, from 1 to %d.", intrinsic.MaxHorizon)},
					"price":                figure("The current price per share."),
					"shares_outstanding":   figure("The number of shares outstanding."),
					"fcf":                  figure("The latest annual free cash flow."),
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the valuation.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			params, err := parametersArgs(args, defaults)
			if err != nil {
				return Failure(id, name, err)
			}

			ticker, _ := stringArg(args, "ticker")
			var src intrinsic.InputSource
			var f intrinsic.Fundamentals
			if m, ok, err := manualArgs(args); err != nil {
				return Failure(id, name, err)
			} else if ok {
				src, f = m, m.Fundamentals(ticker, intrinsic.DefaultCurrency(ticker))
			} else {
				if ticker == "" {
					return Failure(id, name, fmt.Errorf("a ticker or the price, shares_outstanding and fcf are required"))
				}
				if f, err = p.Fetch(ctx, ticker); err != nil {
					return Failure(id, name, err)
				}
				src = intrinsic.Fetched{Fundamentals: f}
			}

			res, err := intrinsic.Value(src, params)
			if err != nil {
				return Failure(id, name, err)
			}
			return Success(id, name, renderer.RenderValuation(renderer.NewValuation(f, params, res)))
		},
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("argument %q is required", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("argument %q must be a non empty string, got %T", key, v)
	}
	return s, nil
}

// numberArg returns the number in args[key], if any.
func numberArg(args map[string]any, key string) (float64, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case int:
		return float64(n), true, nil
	case string:
		r, err := intrinsic.ParseRate(n)
		return float64(r), err == nil, err
	}
	return 0, false, fmt.Errorf("argument %q must be a number, got %T", key, v)
}

func parametersArgs(args map[string]any, defaults intrinsic.Parameters) (intrinsic.Parameters, error) {
	p := defaults
	for key, dst := range map[string]*intrinsic.Rate{
		"discount_rate":        &p.DiscountRate,
		"growth_rate":          &p.GrowthRate,
		"terminal_growth_rate": &p.TerminalGrowthRate,
	} {
		v, ok, err := numberArg(args, key)
		if err != nil {
			return p, err
		}
		if ok {
			*dst = intrinsic.Rate(v)
		}
	}
	h, ok, err := numberArg(args, "horizon")
	if err != nil {
		return p, err
	}
	if ok {
		if h != math.Trunc(h) || h < 1 || h > intrinsic.MaxHorizon {
			return p, fmt.Errorf("%w: horizon must be a whole number of years between 1 and %d, got %v", intrinsic.ErrInvalidParameters, intrinsic.MaxHorizon, h)
		}
		p.Horizon = int(h)
	}
	p = p.Quantize()
	return p, p.Check()
}

// manualArgs returns the manual figures in args, ok is false if there are none.
func manualArgs(args map[string]any) (m intrinsic.Manual, ok bool, err error) {
	keys := []string{"price", "shares_outstanding", "fcf"}
	dst := []*float64{&m.Price, &m.SharesOutstanding, &m.FreeCashFlow}
	found := 0
	for i, key := range keys {
		v, ok, err := numberArg(args, key)
		if err != nil {
			return m, false, err
		}
		if ok {
			*dst[i] = v
			found++
		}
	}
	switch found {
	case 0:
		return m, false, nil
	case len(keys):
		return m, true, nil
	}
	return m, false, fmt.Errorf("manual figures require price, shares_outstanding and fcf")
}
