package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coregx/tinydfa/internal/app"
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

const usage = `
tinydfa - compile regular expressions over a small alphabet into DFAs.

Usage:
  tinydfa <command> [options] [arguments]

Commands:
  match    -regex R -alphabet A | -dfa FILE  TEXT...
  count    -regex R -alphabet A | -dfa FILE  (-limit N | -length N) [-mod M]
  compile  -regex R -alphabet A -o FILE
  run      [-format text|json|yaml] JOB.hcl

Run 'tinydfa <command> -h' for the options of a command.
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return nil, true, nil
	}
	command := args[0]
	switch command {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(output, usage)
		return nil, true, nil
	case app.CommandMatch, app.CommandCount, app.CommandCompile, app.CommandRun:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", command)}
	}

	flagSet := flag.NewFlagSet("tinydfa "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, "\nUsage of tinydfa %s:\n", command)
		flagSet.PrintDefaults()
	}

	cfg := app.Config{Command: command}
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var length lengthFlag
	switch command {
	case app.CommandMatch, app.CommandCount, app.CommandCompile:
		flagSet.StringVar(&cfg.Regex, "regex", "", "Pattern to compile.")
		flagSet.StringVar(&cfg.Alphabet, "alphabet", "", "Alphabet symbols, in order.")
		flagSet.IntVar(&cfg.MaxStates, "max-states", 0, "DFA state limit. 0 keeps the default.")
		if command != app.CommandCompile {
			flagSet.StringVar(&cfg.DFAPath, "dfa", "", "Load a DFA written by 'tinydfa compile' instead of compiling.")
		}
	}
	switch command {
	case app.CommandCount:
		flagSet.IntVar(&cfg.Limit, "limit", 0, "Print counts for every length below N.")
		flagSet.Var(&length, "length", "Print the count for length N only.")
		flagSet.Uint64Var(&cfg.Modulus, "mod", 1_000_000_007, "Count modulo M. 0 counts exactly.")
	case app.CommandCompile:
		flagSet.StringVar(&cfg.Output, "o", "", "Output file.")
	case app.CommandRun:
		flagSet.StringVar(&cfg.Format, "format", "text", "Report format. Options: 'text', 'json' or 'yaml'.")
		flagSet.IntVar(&cfg.Workers, "workers", 4, "Number of patterns processed concurrently.")
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	switch command {
	case app.CommandMatch:
		cfg.Texts = flagSet.Args()
	case app.CommandRun:
		if flagSet.NArg() != 1 {
			return nil, false, &ExitError{Code: 2, Message: "run requires exactly one job file"}
		}
		cfg.JobPath = flagSet.Arg(0)
		cfg.Format = strings.ToLower(cfg.Format)
		switch cfg.Format {
		case "text", "json", "yaml":
		default:
			return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'text', 'json' or 'yaml'"}
		}
	default:
		if flagSet.NArg() > 0 {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
		}
	}
	cfg.Length, cfg.HasLength = length.value, length.set
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "regex" || f.Name == "alphabet" {
			cfg.HasPattern = true
		}
	})

	cfg.LogFormat = strings.ToLower(*logFormatFlag)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	cfg.LogLevel = strings.ToLower(*logLevelFlag)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}

// lengthFlag is a uint64 flag that records whether it was given.
type lengthFlag struct {
	value uint64
	set   bool
}

func (f *lengthFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.FormatUint(f.value, 10)
}

func (f *lengthFlag) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid length %q", s)
	}
	f.value, f.set = v, true
	return nil
}
