package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/intrinsic"
	"github.com/etnz/intrinsic/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	model      string
	paramsFile string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*assistCmd) Usage() string {
	return `dcf assist [-model <model>] [-params <file>] [<question>...]

  Starts an interactive session with an AI assistant that can fetch company
  figures, run valuations with any parameters and search for recent news.

  The Gemini client is configured from the environment, e.g. GOOGLE_API_KEY.
  Type 'bye' to exit.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", agent.DefaultModel, "Gemini model used by the assistant.")
	f.StringVar(&c.paramsFile, "params", "", "YAML file with the default valuation parameters.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	params, err := intrinsic.LoadParameters(c.paramsFile)
	if err == nil {
		params = params.Quantize()
		err = params.Check()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(c.model, newSessionProvider(), params)
	researcher := agent.NewResearcher(c.model)
	a := agent.New(os.Stdout, os.Stdin, c.model, analyst, researcher)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
