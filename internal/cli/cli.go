package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nmorph/hocgen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("hocgen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
hocgen - Compiles declarative neuronal cell descriptions into NEURON hoc templates.

Usage:
  hocgen [options] [CELL_PATH]

Arguments:
  CELL_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	cellFlag := flagSet.String("cell", "", "Path to the cell file or directory.")
	cFlag := flagSet.String("c", "", "Path to the cell file or directory (shorthand).")
	outFlag := flagSet.String("out", ".", "Directory where generated .hoc files are written.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	maxProcLinesFlag := flagSet.Int("max-proc-lines", 100, "Statement budget per generated procedure before splitting.")
	noCommentsFlag := flagSet.Bool("no-comments", false, "Omit explanatory comments from the generated hoc.")
	noSegIDFlag := flagSet.Bool("no-segid-functions", false, "Omit the segment-id lookup procedures.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *cellFlag != "" {
		path = *cellFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Cell path determined.", "path", path)

	if path == "" {
		slog.Debug("No cell path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		CellPath:       path,
		OutDir:         *outFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
		MaxProcLines:   *maxProcLinesFlag,
		Comments:       !*noCommentsFlag,
		SegIDFunctions: !*noSegIDFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
