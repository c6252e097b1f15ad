package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/charmbracelet/log"
)

// Environment passed to extensions. CPI_DATA_SOURCE is also the
// configuration override of data.source, so extensions using the config
// package read the same dataset.
const (
	EnvConfigFile = "CPI_CONFIG"
	EnvDataSource = "CPI_DATA_SOURCE"
	EnvVerbose    = "CPI_VERBOSE"
)

// RunExtension attempts to find and execute an external cpi-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "cpi-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug("external command not found", "name", externalCmdName, "err", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvConfigFile+"="+*configFile)
	if *dataSource != "" {
		cmd.Env = append(cmd.Env, EnvDataSource+"="+*dataSource)
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
