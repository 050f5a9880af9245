package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/intrinsic/renderer"
	"github.com/google/subcommands"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches the figures a valuation needs" }
func (*fetchCmd) Usage() string {
	return `dcf fetch <ticker>

Fetches the latest price, shares outstanding and free cash flow of a company
from EOD Historical Data, and tells how the free cash flow was obtained.

Requires an API key set via the -eodhd-api-key flag or the EODHD_API_KEY
environment variable.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a single ticker is expected.")
		return subcommands.ExitUsageError
	}

	fundamentals, err := newEODHD().Fetch(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch from eodhd.com: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderFundamentals(renderer.NewFundamentals(fundamentals)))
	return subcommands.ExitSuccess
}
