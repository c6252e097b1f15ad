package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type configCmd struct{}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "print the effective configuration" }
func (*configCmd) Usage() string {
	return `cpi config

  Prints the configuration after applying the configuration file, the
  environment variables and the global flags. Credentials are masked.
`
}

func (*configCmd) SetFlags(f *flag.FlagSet) {}

func (*configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	fmt.Fprint(stdout, cfg)
	return subcommands.ExitSuccess
}
