package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/inflation"
	"github.com/etnz/inflation/narrative"
	"github.com/google/subcommands"
)

type promptCmd struct {
	queryFlags
}

func (*promptCmd) Name() string     { return "prompt" }
func (*promptCmd) Synopsis() string { return "print the prompt sent to the narrative service" }
func (*promptCmd) Usage() string {
	return `cpi prompt [-c <category>] [-from <year>] [-to <year>] [-amount <amount>]

  Prints the exact prompt the dashboard sends to the narrative service,
  without calling it.
`
}

func (c *promptCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, series, status := load(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	q, err := c.Query(series, cfg)
	if err != nil {
		return exitStatus(err)
	}
	report, err := inflation.Analyze(series, q)
	if err != nil {
		return exitStatus(err)
	}

	prompt, err := narrative.BuildPrompt(narrative.NewPromptData(report, cfg.Data.Region))
	if err != nil {
		return exitStatus(err)
	}
	fmt.Fprint(stdout, prompt)
	return subcommands.ExitSuccess
}
