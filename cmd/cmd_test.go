package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/etnz/inflation"
	"github.com/etnz/inflation/config"
	"github.com/etnz/inflation/narrative"
	"github.com/etnz/inflation/renderer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

// testCSV has Fuel and light means of 120.5 in 2015 and 158.2 in 2020.
const testCSV = `Sector,Year,Month,Fuel and light,Egg,General index
Rural,2015,Jan,118.5,50,100
Rural,2015,Feb,122.5,,100
Urban,2020,Marcrh,150,70,130
Urban,2020,Dec,166.4,70,131
`

// setup points the global flags to a fresh dataset and captures stdout.
func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "CPI_NARRATIVE_API_KEY", "CPI_DATA_SOURCE"} {
		t.Setenv(k, "")
	}

	path := filepath.Join(t.TempDir(), "cpi.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0644); err != nil {
		t.Fatal(err)
	}
	oldSource, oldStdout := *dataSource, stdout
	*dataSource = path
	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() {
		*dataSource, stdout = oldSource, oldStdout
	})
	return &out
}

func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("invalid arguments %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestAdjust(t *testing.T) {
	out := setup(t)
	if status := run(t, &adjustCmd{}, "-c", "Fuel and light", "-from", "2015", "-to", "2020", "-amount", "1000"); status != subcommands.ExitSuccess {
		t.Fatalf("got status %v, want success", status)
	}
	for _, want := range []string{
		"> ₹1,000 in 2015 is worth approx. **₹1,312** in 2020 for *Fuel and light*.",
		"has increased by **31.29%**",
		"| Average CPI | 120.50 | 158.20 |",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestAdjust_InvalidInputs(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "reversed range", args: []string{"-from", "2020", "-to", "2015"}},
		{name: "same year", args: []string{"-from", "2015", "-to", "2015"}},
		{name: "unknown category", args: []string{"-c", "General index"}},
		{name: "amount below one", args: []string{"-amount", "0.5"}},
		{name: "amount not a number", args: []string{"-amount", "lots"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := setup(t)
			if status := run(t, &adjustCmd{}, tc.args...); status != subcommands.ExitUsageError {
				t.Errorf("got status %v, want usage error", status)
			}
			if out.Len() != 0 {
				t.Errorf("got output %q, want none", out)
			}
		})
	}
}

func TestQueryFlags_Defaults(t *testing.T) {
	setup(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	series, err := LoadSeries(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	var qf queryFlags
	q, err := qf.Query(series, cfg)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	want := inflation.Query{Category: "Fuel and light", StartYear: 2015, EndYear: 2020, Amount: inflation.M(1000, "INR")}
	if q.Category != want.Category || q.StartYear != want.StartYear || q.EndYear != want.EndYear || !q.Amount.Equal(want.Amount) {
		t.Errorf("got %+v, want %+v", q, want)
	}

	qf.category = "Tea"
	if _, err := qf.Query(series, cfg); !errors.Is(err, inflation.ErrUnknownCategory) {
		t.Errorf("got error %v, want ErrUnknownCategory", err)
	}
}

func TestTrend(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		want   []string
		status subcommands.ExitStatus
	}{
		{
			name:   "full range",
			args:   []string{"-c", "Fuel and light"},
			want:   []string{"| 2015 | 120.50 | - |", "| 2020 | 158.20 | +31.29% |"},
			status: subcommands.ExitSuccess,
		},
		{
			name:   "bounds without data",
			args:   []string{"-c", "Fuel and light", "-from", "2014", "-to", "2016"},
			want:   []string{"from 2014 to 2016", "| 2015 | 120.50 | - |"},
			status: subcommands.ExitSuccess,
		},
		{
			name:   "invalid range",
			args:   []string{"-from", "2020", "-to", "2015"},
			status: subcommands.ExitUsageError,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := setup(t)
			if status := run(t, &trendCmd{}, tc.args...); status != tc.status {
				t.Fatalf("got status %v, want %v", status, tc.status)
			}
			for _, want := range tc.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output does not contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	out := setup(t)
	if status := run(t, &promptCmd{}, "-from", "2015", "-to", "2020"); status != subcommands.ExitSuccess {
		t.Fatalf("got status %v, want success", status)
	}
	got := out.String()
	if !strings.HasPrefix(got, "Between 2015 and 2020, in India, the Consumer Price Index (CPI) for the category 'Fuel and light' changed as follows:") {
		t.Errorf("unexpected prompt start:\n%s", got)
	}
	if !strings.HasSuffix(got, "CPI trend by year:\n2015: 120.50\n2020: 158.20\n") {
		t.Errorf("unexpected prompt trend:\n%s", got)
	}
}

func TestDashboard(t *testing.T) {
	out := setup(t)
	dir := t.TempDir()
	chart := filepath.Join(dir, "trend.svg")
	page := filepath.Join(dir, "dashboard.html")

	var gotPrompt string
	c := &dashboardCmd{
		newGenerator: func(ctx context.Context, cfg *config.Config) (narrative.Generator, error) {
			return narrative.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return "Fuel became pricier.", nil
			}), nil
		},
	}
	if status := run(t, c, "-chart", chart, "-html", page); status != subcommands.ExitSuccess {
		t.Fatalf("got status %v, want success", status)
	}

	got := out.String()
	pending := strings.Index(got, "*Waiting for the narrative service.*")
	insight := strings.Index(got, "Fuel became pricier.")
	if pending < 0 || insight < 0 || insight < pending {
		t.Errorf("want the pending line followed by the insight:\n%s", got)
	}
	if !strings.Contains(got, "![CPI trend for Fuel and light]("+chart+")") {
		t.Errorf("dashboard does not link the chart:\n%s", got)
	}
	if !strings.Contains(gotPrompt, "prices for fuel and light increased by approximately 31.29%") {
		t.Errorf("unexpected prompt:\n%s", gotPrompt)
	}

	if _, err := os.Stat(chart); err != nil {
		t.Errorf("chart not written: %v", err)
	}
	html, err := os.ReadFile(page)
	if err != nil {
		t.Fatalf("html page not written: %v", err)
	}
	if !strings.Contains(string(html), "Fuel became pricier.") || strings.Contains(string(html), "Waiting for the narrative service") {
		t.Errorf("html page does not hold the resolved insight:\n%s", html)
	}
}

func TestDashboard_InsightUnavailable(t *testing.T) {
	testCases := []struct {
		name      string
		generator func(ctx context.Context, cfg *config.Config) (narrative.Generator, error)
		reason    string
	}{
		{
			name:   "no api key",
			reason: "narrative service is not configured",
		},
		{
			name:   "service error",
			reason: "permission denied",
			generator: func(ctx context.Context, cfg *config.Config) (narrative.Generator, error) {
				return narrative.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
					return "", errors.New("permission denied")
				}), nil
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := setup(t)
			c := &dashboardCmd{newGenerator: tc.generator}
			if status := run(t, c); status != subcommands.ExitSuccess {
				t.Fatalf("got status %v, want success", status)
			}
			if want := "*Insight unavailable: " + tc.reason + "*"; !strings.Contains(out.String(), want) {
				t.Errorf("dashboard does not contain %q:\n%s", want, out)
			}
			if !strings.Contains(out.String(), "would now cost approximately ₹1,312 in 2020") {
				t.Errorf("dashboard does not show the result:\n%s", out)
			}
		})
	}
}

func TestDashboard_NoInsight(t *testing.T) {
	out := setup(t)
	called := false
	c := &dashboardCmd{
		newGenerator: func(ctx context.Context, cfg *config.Config) (narrative.Generator, error) {
			called = true
			return nil, errors.New("unexpected call")
		},
	}
	if status := run(t, c, "-no-insight"); status != subcommands.ExitSuccess {
		t.Fatalf("got status %v, want success", status)
	}
	if called {
		t.Error("the narrative service was called with -no-insight")
	}
	if strings.Contains(out.String(), "AI Insight") {
		t.Errorf("dashboard has an insight section:\n%s", out)
	}
}

func TestDashboard_JSON(t *testing.T) {
	out := setup(t)
	c := &dashboardCmd{
		newGenerator: func(ctx context.Context, cfg *config.Config) (narrative.Generator, error) {
			return narrative.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
				return "  Fuel became pricier.\n", nil
			}), nil
		},
	}
	if status := run(t, c, "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("got status %v, want success", status)
	}

	var got renderer.Dashboard
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not a json dashboard: %v\n%s", err, out)
	}
	if got.Category != "Fuel and light" || got.StartYear != 2015 || got.EndYear != 2020 {
		t.Errorf("unexpected query in %+v", got)
	}
	if got, want := got.AdjustedAmount.Whole(), "₹1,312"; got != want {
		t.Errorf("got adjusted amount %q, want %q", got, want)
	}
	want := renderer.InsightBlock{Status: renderer.InsightReady, Text: "Fuel became pricier."}
	if diff := cmp.Diff(want, got.Insight); diff != "" {
		t.Errorf("insight mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoriesAndYears(t *testing.T) {
	out := setup(t)
	if status := run(t, &categoriesCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("got status %v, want success", status)
	}
	if got := out.String(); !strings.Contains(got, "Fuel and light") || !strings.Contains(got, "Egg") || strings.Contains(got, "General index") {
		t.Errorf("unexpected categories:\n%s", got)
	}

	out.Reset()
	if status := run(t, &yearsCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("got status %v, want success", status)
	}
	if got := out.String(); !strings.Contains(got, "2015") || !strings.Contains(got, "2020") {
		t.Errorf("unexpected years:\n%s", got)
	}
}

func TestLoad_MissingDataset(t *testing.T) {
	setup(t)
	*dataSource = filepath.Join(t.TempDir(), "none.csv")
	if status := run(t, &categoriesCmd{}); status != subcommands.ExitFailure {
		t.Errorf("got status %v, want failure", status)
	}
}

func TestIsCommand(t *testing.T) {
	for _, name := range []string{"dashboard", "adjust", "help", "topic"} {
		if !IsCommand(name) {
			t.Errorf("IsCommand(%q) = false, want true", name)
		}
	}
	if IsCommand("hello") {
		t.Error(`IsCommand("hello") = true, want false`)
	}
}

func TestCompletionCommand(t *testing.T) {
	c := completionCommand()
	for _, cmd := range Commands {
		sub, ok := c.Sub[cmd.Command.Name()]
		if !ok {
			t.Errorf("no completion for subcommand %q", cmd.Command.Name())
			continue
		}
		f := flag.NewFlagSet(cmd.Command.Name(), flag.ContinueOnError)
		cmd.Command.SetFlags(f)
		f.VisitAll(func(fl *flag.Flag) {
			if _, ok := sub.Flags[fl.Name]; !ok {
				t.Errorf("no completion for %s -%s", cmd.Command.Name(), fl.Name)
			}
		})
	}
}

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension scripts need a unix shell")
	}
	setup(t)
	tempDir := t.TempDir()

	script := "#!/bin/sh\necho \"$CPI_DATA_SOURCE $CPI_VERBOSE $1\" > \"$2\"\n"
	if err := os.WriteFile(filepath.Join(tempDir, "cpi-hello"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	result := filepath.Join(tempDir, "result.txt")
	found, code := RunExtension("hello", []string{"world", result})
	if !found || code != 0 {
		t.Fatalf("RunExtension() = %v, %d, want true, 0", found, code)
	}
	got, err := os.ReadFile(result)
	if err != nil {
		t.Fatal(err)
	}
	if want := *dataSource + " false world\n"; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if found, _ := RunExtension("missing", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}
