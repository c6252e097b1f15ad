package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/etnz/inflation"
	"github.com/etnz/inflation/renderer"
	"github.com/google/subcommands"
)

type trendCmd struct {
	queryFlags
	chart string
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "show the yearly CPI trend of a category" }
func (*trendCmd) Usage() string {
	return `cpi trend [-c <category>] [-from <year>] [-to <year>] [-chart <file.png|file.svg>]

  Shows the yearly average index of a category over the year range. Years
  without data are skipped. With -chart, the monthly values over the whole
  dataset are plotted to a file.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	c.queryFlags.setRangeFlags(f)
	f.StringVar(&c.chart, "chart", "", "Write the trend chart to this .png or .svg file.")
}

func (c *trendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, series, status := load(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	q, err := c.RangeQuery(series)
	if err != nil {
		return exitStatus(err)
	}
	report, err := inflation.Trend(series, q)
	if err != nil {
		return exitStatus(err)
	}

	if c.chart != "" {
		if err := renderer.SaveChart(c.chart, chartOptions(report), report.Chart); err != nil {
			return exitStatus(err)
		}
		log.Debug("chart written", "file", c.chart)
	}

	d := renderer.NewDashboard(report, renderer.DashboardOptions{Name: cfg.Data.Name, Source: cfg.Data.Source, Region: cfg.Data.Region, Chart: c.chart})
	printMarkdown(renderer.RenderTrend(d))
	return subcommands.ExitSuccess
}

func chartOptions(r *inflation.Report) renderer.ChartOptions {
	return renderer.ChartOptions{
		Title:  fmt.Sprintf("CPI Trend for %s", r.Query.Category),
		YLabel: "CPI",
	}
}
