package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/etnz/inflation/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Complete("cpi")

	log.SetReportTimestamp(false)
	log.SetPrefix("cpi")

	commander := subcommands.NewCommander(flag.CommandLine, "cpi")
	cmd.Register(commander)

	flag.Parse()
	if *cmd.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if name := flag.Arg(0); name != "" && !cmd.IsCommand(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
