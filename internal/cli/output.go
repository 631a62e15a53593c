package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/tacogips/kickstart/internal/render"
)

// Output destinations and styling, set up per invocation.
var (
	stdout  io.Writer = os.Stdout
	stderr  io.Writer = os.Stderr
	palette           = render.New(os.Stdout, false)
)

// setOutput redirects command output and rebuilds the palette.
func setOutput(out, errOut io.Writer, noColor bool) {
	stdout = out
	stderr = errOut
	palette = render.New(out, noColor)
}

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", palette.Success(), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", palette.Warning(), msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", palette.Progress(), msg)
}

// printError prints an error to stderr
func printError(err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
}
