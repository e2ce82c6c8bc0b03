package main

import (
	"errors"
	"os"
)

// Set at release time via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		printer := newPrinter()
		var cliErr *CLIError
		if !errors.As(err, &cliErr) {
			cliErr = &CLIError{Summary: err.Error(), ExitCode: ExitGeneral}
		}
		printer.FormatError(cliErr)
		os.Exit(cliErr.ExitCode)
	}
}
