// Command dcf estimates the intrinsic value of companies with a discounted cash flow model.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"

	"github.com/etnz/intrinsic/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
)

func main() {
	// API keys can be kept in a .env file, the environment takes precedence.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	// exits when invoked by the shell for completion.
	complete.Complete("dcf", cmd.Completion())

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}
	os.Exit(int(commander.Execute(context.Background())))
}
