package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/intrinsic"
	"github.com/etnz/intrinsic/renderer"
	"github.com/google/subcommands"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	discount   intrinsic.Rate
	growth     intrinsic.Rate
	terminal   intrinsic.Rate
	years      int
	paramsFile string

	manual   bool
	price    string
	shares   string
	fcf      string
	currency string

	html bool
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "estimate the intrinsic value per share of a company" }
func (*valueCmd) Usage() string {
	return `dcf value [-r <rate>] [-g <rate>] [-tg <rate>] [-params <file>] <ticker>
dcf value -manual -price <price> -shares <shares> -fcf <fcf> [<ticker>]

  Estimates the intrinsic value per share of a company with a discounted cash
  flow model: the latest free cash flow grows at a constant rate for 5 years,
  each year is discounted to today, and a terminal value is added for the
  years after.

  Price, shares outstanding and free cash flow are fetched from EODHD, unless
  -manual is set. Rates are accepted as fractions (0.08) or percentages (8%)
  and rounded to the nearest percent.

  See 'dcf topic valuation' for the details.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	def := intrinsic.DefaultParameters()
	c.discount, c.growth, c.terminal = def.DiscountRate, def.GrowthRate, def.TerminalGrowthRate
	f.Var(&c.discount, "r", "Discount rate, the required return, between 1% and 20%.")
	f.Var(&c.growth, "g", "Free cash flow growth rate over the projection, between -10% and 20%.")
	f.Var(&c.terminal, "tg", "Terminal growth rate, it must be lower than the discount rate.")
	f.IntVar(&c.years, "years", def.Horizon, fmt.Sprintf("Number of projected years, up to %d.", intrinsic.MaxHorizon))
	f.StringVar(&c.paramsFile, "params", "", "YAML file with default parameters. Flags take precedence.")

	f.BoolVar(&c.manual, "manual", false, "Do not fetch anything, use -price, -shares and -fcf instead.")
	f.StringVar(&c.price, "price", "", "Current price per share (manual mode).")
	f.StringVar(&c.shares, "shares", "", "Shares outstanding (manual mode).")
	f.StringVar(&c.fcf, "fcf", "", "Latest annual free cash flow (manual mode).")
	f.StringVar(&c.currency, "currency", "", "Currency of the figures. Defaults to the provider's, or JPY for .T tickers and USD otherwise.")

	f.BoolVar(&c.html, "html", false, "Print the report as HTML.")
}

// parameters returns the parameters from the params file, overridden by the flags explicitly set.
func (c *valueCmd) parameters(f *flag.FlagSet) (intrinsic.Parameters, error) {
	p, err := intrinsic.LoadParameters(c.paramsFile)
	if err != nil {
		return p, err
	}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "r":
			p.DiscountRate = c.discount
		case "g":
			p.GrowthRate = c.growth
		case "tg":
			p.TerminalGrowthRate = c.terminal
		case "years":
			p.Horizon = c.years
		}
	})
	p = p.Quantize()
	return p, p.Check()
}

// source returns where the figures come from.
func (c *valueCmd) source(ctx context.Context, ticker string) (intrinsic.InputSource, intrinsic.Fundamentals, error) {
	if !c.manual {
		f, err := newEODHD().Fetch(ctx, ticker)
		if err != nil {
			return nil, f, err
		}
		return intrinsic.Fetched{Fundamentals: f}, f, nil
	}

	var m intrinsic.Manual
	var err error
	if m.Price, err = parseFigure("price", c.price); err != nil {
		return nil, intrinsic.Fundamentals{}, err
	}
	if m.SharesOutstanding, err = parseFigure("shares", c.shares); err != nil {
		return nil, intrinsic.Fundamentals{}, err
	}
	if m.FreeCashFlow, err = parseFigure("fcf", c.fcf); err != nil {
		return nil, intrinsic.Fundamentals{}, err
	}
	return m, m.Fundamentals(ticker, ""), nil
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker := f.Arg(0)
	switch {
	case f.NArg() > 1:
		fmt.Fprintln(os.Stderr, "Error: a single ticker is expected.")
		return subcommands.ExitUsageError
	case ticker == "" && !c.manual:
		fmt.Fprintln(os.Stderr, "Error: a ticker is required, or -manual.")
		return subcommands.ExitUsageError
	case ticker == "":
		ticker = "manual"
	}

	params, err := c.parameters(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	src, fundamentals, err := c.source(ctx, ticker)
	if errors.Is(err, intrinsic.ErrDataUnavailable) {
		fmt.Fprintf(os.Stderr, "Error: could not fetch %s: %v\n", ticker, err)
		fmt.Fprintln(os.Stderr, "You can still enter the figures manually with -manual -price <price> -shares <shares> -fcf <fcf>.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.currency != "" {
		fundamentals.Currency = c.currency
	}

	res, err := intrinsic.Value(src, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	md := renderer.RenderValuation(renderer.NewValuation(fundamentals, params, res))
	if !c.html {
		printMarkdown(md)
		return subcommands.ExitSuccess
	}
	html, err := renderer.HTML(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering HTML: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Print(html)
	return subcommands.ExitSuccess
}
