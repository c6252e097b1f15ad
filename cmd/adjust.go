package cmd

import (
	"context"
	"flag"

	"github.com/etnz/inflation"
	"github.com/etnz/inflation/renderer"
	"github.com/google/subcommands"
)

type adjustCmd struct {
	queryFlags
}

func (*adjustCmd) Name() string     { return "adjust" }
func (*adjustCmd) Synopsis() string { return "compute the inflation-adjusted value of an amount" }
func (*adjustCmd) Usage() string {
	return `cpi adjust [-c <category>] [-from <year>] [-to <year>] [-amount <amount>]

  Computes what an amount of money in the start year is worth in the end year
  for a CPI category, using the yearly average index of both years.
`
}

func (c *adjustCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	d := renderer.NewDashboard(report, renderer.DashboardOptions{Name: cfg.Data.Name, Source: cfg.Data.Source, Region: cfg.Data.Region})
	printMarkdown(renderer.RenderAdjustment(d))
	return subcommands.ExitSuccess
}
