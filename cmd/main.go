// Package cmd implements the dcf command line application.
package cmd

import (
	"github.com/etnz/intrinsic/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&valueCmd{}, "valuation")
	c.Register(&fetchCmd{}, "valuation")
	c.Register(&searchCmd{}, "valuation")

	c.Register(&serveCmd{}, "services")
	c.Register(&assistCmd{}, "services")

	c.Register(&topicCmd{}, "documentation")
}

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	rates := predict.Set{"1%", "2%", "3%", "5%", "8%", "10%"}
	topics := predict.Set{"*"}
	if index, err := docs.Topics(); err == nil {
		for _, t := range index {
			topics = append(topics, t.Name)
		}
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"v":             predict.Nothing,
			"eodhd-api-key": predict.Something,
			"cache-dir":     predict.Dirs("*"),
			"cache-ttl":     predict.Set{"1h", "24h", "168h"},
		},
		Sub: map[string]*complete.Command{
			"value": {
				Flags: map[string]complete.Predictor{
					"r":        rates,
					"g":        rates,
					"tg":       rates,
					"years":    predict.Set{"5", "10"},
					"params":   predict.Files("*.yaml"),
					"manual":   predict.Nothing,
					"price":    predict.Something,
					"shares":   predict.Something,
					"fcf":      predict.Something,
					"currency": predict.Set{"USD", "JPY", "EUR", "GBP"},
					"html":     predict.Nothing,
				},
				Args: predict.Something,
			},
			"fetch":  {Args: predict.Something},
			"search": {Args: predict.Something},
			"serve": {
				Flags: map[string]complete.Predictor{
					"addr":   predict.Something,
					"params": predict.Files("*.yaml"),
				},
			},
			"assist": {
				Flags: map[string]complete.Predictor{"model": predict.Something},
			},
			"topic": {
				Flags: map[string]complete.Predictor{"list": predict.Nothing},
				Args:  topics,
			},
			"help":  {},
		},
	}
}
