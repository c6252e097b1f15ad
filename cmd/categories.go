package cmd

import (
	"context"
	"flag"

	"github.com/etnz/inflation/renderer"
	"github.com/google/subcommands"
)

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list the CPI categories of the dataset" }
func (*categoriesCmd) Usage() string {
	return `cpi categories

  Lists the selectable CPI categories, in dataset order. The Sector, Year and
  Month columns and the last column (General index) are not categories.
`
}

func (*categoriesCmd) SetFlags(f *flag.FlagSet) {}

func (c *categoriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, series, status := load(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.RenderCategories(cfg.Data.Name, series.Categories(), series.Years()))
	return subcommands.ExitSuccess
}

type yearsCmd struct{}

func (*yearsCmd) Name() string     { return "years" }
func (*yearsCmd) Synopsis() string { return "list the years covered by the dataset" }
func (*yearsCmd) Usage() string {
	return `cpi years

  Lists the distinct years of the cleaned dataset, in ascending order.
`
}

func (*yearsCmd) SetFlags(f *flag.FlagSet) {}

func (c *yearsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, series, status := load(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.RenderYears(series.Years()))
	return subcommands.ExitSuccess
}
