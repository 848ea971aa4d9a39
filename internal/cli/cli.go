package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/flowgridgo/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("flowgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
FlowGridGo - a symbolic dataflow engine for estimator pipelines.

Usage:
  flowgridgo [options] [PIPELINE_PATH]

Arguments:
  PIPELINE_PATH
    Path to a .hcl pipeline definition file.

Options:
`)
		flagSet.PrintDefaults()
	}

	pipelineFlag := flagSet.String("pipeline", "", "Path to the pipeline definition file.")
	pFlag := flagSet.String("p", "", "Path to the pipeline definition file (shorthand).")
	dataFlag := flagSet.String("data", "", "Path to the YAML dataset file.")
	modeFlag := flagSet.String("mode", "fit-predict", "Execution mode. Options: 'fit', 'predict' or 'fit-predict'.")
	outputsFlag := flagSet.String("outputs", "", "Comma-separated output names to request. Empty requests all model outputs.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *pipelineFlag != "" {
		path = *pipelineFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		slog.Debug("No pipeline path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if *dataFlag == "" {
		return nil, false, &ExitError{Code: 2, Message: "a dataset file is required: pass -data"}
	}

	mode := strings.ToLower(*modeFlag)
	switch mode {
	case "fit", "predict", "fit-predict":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid mode: must be 'fit', 'predict' or 'fit-predict'"}
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

	var outputs []string
	if *outputsFlag != "" {
		for _, name := range strings.Split(*outputsFlag, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
	}

	config := &app.Config{
		PipelinePath: path,
		DataPath:     *dataFlag,
		Mode:         mode,
		Outputs:      outputs,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
