package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/etnz/intrinsic"
	"github.com/etnz/intrinsic/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr       string
	paramsFile string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve valuations over HTTP" }
func (*serveCmd) Usage() string {
	return `dcf serve [-addr <addr>] [-params <file>]

  Serves a JSON API:

    POST /api/valuation     values a ticker, or manually entered figures.
    GET  /api/fundamentals  returns the figures fetched for ?ticker=.

  Fetched figures are kept in memory for -cache-ttl.
  See 'dcf topic serve' for the request and response bodies.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on.")
	f.StringVar(&c.paramsFile, "params", "", "YAML file with the default parameters of the requests.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	params, err := intrinsic.LoadParameters(c.paramsFile)
	if err == nil {
		params = params.Quantize()
		err = params.Check()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if eodhdAPIKey() == "" {
		fmt.Fprintf(os.Stderr, "Warning: no EODHD API key, only manual valuations will succeed. Set -eodhd-api-key or %s.\n", eodhdAPIKeyEnv)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Printf("Serving on %s\n", c.addr)
	if err := server.New(newSessionProvider(), params).ListenAndServe(ctx, c.addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
