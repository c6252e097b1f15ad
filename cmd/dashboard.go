package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/etnz/inflation"
	"github.com/etnz/inflation/config"
	"github.com/etnz/inflation/narrative"
	"github.com/etnz/inflation/renderer"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type dashboardCmd struct {
	queryFlags
	chart     string
	html      string
	noInsight bool
	json      bool

	// newGenerator connects to the narrative service, defaults to Gemini.
	newGenerator func(ctx context.Context, cfg *config.Config) (narrative.Generator, error)
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "analyze the impact of inflation on an amount, with an AI insight" }
func (*dashboardCmd) Usage() string {
	return `cpi dashboard [-c <category>] [-from <year>] [-to <year>] [-amount <amount>]
              [-chart <file>] [-html <file>] [-no-insight] [-json]

  Prints the inflation-adjusted value of the amount, the yearly trend of the
  category and an explanation written by the narrative service.

  The figures are printed right away, the explanation follows when the
  narrative service answers. A failing narrative service never fails the
  dashboard.

  With -json, the dashboard is printed once complete, as a JSON document.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	c.queryFlags.SetFlags(f)
	f.StringVar(&c.chart, "chart", "", "Write the trend chart to this .png or .svg file.")
	f.StringVar(&c.html, "html", "", "Also export the dashboard as a standalone HTML page.")
	f.BoolVar(&c.noInsight, "no-insight", false, "Do not call the narrative service.")
	f.BoolVar(&c.json, "json", false, "Print the complete dashboard as JSON instead of markdown.")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	d := renderer.NewDashboard(report, renderer.DashboardOptions{
		Name:   cfg.Data.Name,
		Source: cfg.Data.Source,
		Region: cfg.Data.Region,
		Chart:  c.chart,
	})

	withInsight := cfg.Narrative.Enabled && !c.noInsight
	var prompt string
	if withInsight {
		prompt, err = narrative.BuildPrompt(narrative.NewPromptData(report, cfg.Data.Region))
		if err != nil {
			return exitStatus(err)
		}
		d.Insight.Status = renderer.InsightPending
	}

	// The chart and the insight are produced concurrently. The insight never
	// returns an error, so it cannot cancel the chart.
	g, gctx := errgroup.WithContext(ctx)
	if c.chart != "" {
		g.Go(func() error {
			return renderer.SaveChart(c.chart, chartOptions(report), report.Chart)
		})
	}
	var insight narrative.Insight
	if withInsight {
		narrator := narrative.NewNarrator(c.generator(gctx, cfg))
		narrator.Timeout = cfg.Narrative.Timeout
		g.Go(func() error {
			insight = narrator.Explain(gctx, prompt)
			return nil
		})
	}

	if !c.json {
		printMarkdown(renderer.RenderDashboard(d))
	}

	if err := g.Wait(); err != nil {
		return exitStatus(err)
	}
	if withInsight {
		d.SetInsight(insight)
		if !insight.Available() {
			log.Debug("insight unavailable", "err", insight.Err)
		}
		if !c.json {
			printMarkdown(renderer.RenderInsight(d))
		}
	}

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return exitStatus(err)
		}
	}

	if c.html != "" {
		page, err := renderer.HTML(fmt.Sprintf("%s: %d to %d", q.Category, q.StartYear, q.EndYear), renderer.RenderDashboard(d))
		if err != nil {
			return exitStatus(err)
		}
		if err := os.WriteFile(c.html, page, 0644); err != nil {
			return exitStatus(fmt.Errorf("cannot write %s: %w", c.html, err))
		}
		log.Debug("dashboard exported", "file", c.html)
	}
	return subcommands.ExitSuccess
}

// generator returns the narrative service client, or nil when it cannot be
// reached. A nil generator makes the insight unavailable.
func (c *dashboardCmd) generator(ctx context.Context, cfg *config.Config) narrative.Generator {
	newGenerator := c.newGenerator
	if newGenerator == nil {
		newGenerator = newGemini
	}
	g, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Warn("narrative service unavailable", "err", err)
		return nil
	}
	return g
}

func newGemini(ctx context.Context, cfg *config.Config) (narrative.Generator, error) {
	if cfg.Narrative.APIKey == "" {
		return nil, fmt.Errorf("no API key, set GEMINI_API_KEY or narrative.api_key")
	}
	return narrative.NewGemini(ctx, cfg.Narrative.APIKey, cfg.Narrative.Model)
}
