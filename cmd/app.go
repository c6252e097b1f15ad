// Package cmd implements the cpi command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/etnz/inflation"
	"github.com/etnz/inflation/config"
	"github.com/etnz/inflation/dataset"
	"github.com/google/subcommands"
)

// Commands lists the cpi subcommands with their help group.
var Commands = []struct {
	Command subcommands.Command
	Group   string
}{
	{&categoriesCmd{}, "dataset"},
	{&yearsCmd{}, "dataset"},
	{&adjustCmd{}, "analysis"},
	{&trendCmd{}, "analysis"},
	{&dashboardCmd{}, "analysis"},
	{&promptCmd{}, "analysis"},
	{&configCmd{}, "help"},
	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// IsCommand reports whether name is a built-in subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, cmd := range Commands {
		if cmd.Command.Name() == name {
			return true
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file (yaml, toml or json). Defaults to cpi.yaml in the current directory, if any.")
var dataSource = flag.String("data", "", "CPI dataset: a .csv, .xlsx or .json file, an http(s) URL, or sheets://<spreadsheet id>/<range>. Overrides data.source.")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Print debug logs.")

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// LoadConfig loads and validates the configuration, applying the global flags.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataSource != "" {
		cfg.Data.Source = *dataSource
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}

	level, _ := log.ParseLevel(cfg.Log.Level)
	if *Verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	return cfg, nil
}

// LoadSeries reads and cleans the configured dataset.
func LoadSeries(ctx context.Context, cfg *config.Config) (*inflation.Series, error) {
	table, err := dataset.Open(ctx, cfg.Source())
	if err != nil {
		return nil, err
	}
	series, stats, err := inflation.Load(table)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", cfg.Data.Source, err)
	}
	log.Debug("dataset loaded",
		"source", cfg.Data.Source,
		"rows", stats.Rows,
		"kept", stats.Kept,
		"missing", stats.MissingTemporal,
		"badYear", stats.BadYear,
		"badDate", stats.BadDate)
	return series, nil
}

// load is the common prologue of the subcommands reading the dataset.
func load(ctx context.Context) (*config.Config, *inflation.Series, subcommands.ExitStatus) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, subcommands.ExitUsageError
	}
	series, err := LoadSeries(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, subcommands.ExitFailure
	}
	return cfg, series, subcommands.ExitSuccess
}

// exitStatus reports err and maps input errors to a usage error.
func exitStatus(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	switch {
	case errors.Is(err, inflation.ErrInvalidRange),
		errors.Is(err, inflation.ErrInvalidAmount),
		errors.Is(err, inflation.ErrUnknownCategory):
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
