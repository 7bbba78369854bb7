package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Output destinations, replaced by the command's writers before each run.
var (
	outWriter io.Writer = os.Stdout
	errWriter io.Writer = os.Stderr
)

var (
	successColor  = color.New(color.FgGreen)
	warningColor  = color.New(color.FgYellow)
	errorColor    = color.New(color.FgRed)
	progressColor = color.New(color.FgBlue)
)

// Output formatting helpers

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(outWriter, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(outWriter, "%s %s\n", successColor.Sprint("✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(outWriter, "%s %s\n", warningColor.Sprint("⚠"), msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(outWriter, "%s %s\n", progressColor.Sprint("→"), msg)
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(errWriter, "%s %v\n", errorColor.Sprint("Error:"), err)
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
