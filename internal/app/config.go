package app

import (
	"errors"
	"fmt"
)

// Commands understood by App.Run.
const (
	CommandMatch   = "match"
	CommandCount   = "count"
	CommandCompile = "compile"
	CommandRun     = "run"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string

	// automaton source: either Regex and Alphabet, or DFAPath
	Regex    string
	Alphabet string
	DFAPath  string
	// HasPattern marks Regex and Alphabet as given even when both are
	// empty; the empty pattern over the empty alphabet is valid.
	HasPattern bool

	Texts     []string // match
	Limit     int      // count: every length below Limit
	Length    uint64   // count: one length, when HasLength
	HasLength bool
	Modulus   uint64 // count: 0 counts exactly
	MaxStates int    // 0 keeps the default
	Output    string // compile

	JobPath string // run
	Format  string // run
	Workers int    // run

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandMatch, CommandCount, CommandCompile:
		cfg.HasPattern = cfg.HasPattern || cfg.Regex != "" || cfg.Alphabet != ""
		if cfg.DFAPath == "" && !cfg.HasPattern {
			return nil, errors.New("either -regex and -alphabet or -dfa is required")
		}
		if cfg.DFAPath != "" && cfg.HasPattern {
			return nil, errors.New("-dfa cannot be combined with -regex or -alphabet")
		}
		if cfg.Command == CommandCompile && cfg.Output == "" {
			return nil, errors.New("compile requires -o")
		}
		if cfg.Command == CommandCount && !cfg.HasLength && cfg.Limit <= 0 {
			return nil, errors.New("count requires a positive -limit or a -length")
		}
	case CommandRun:
		if cfg.JobPath == "" {
			return nil, errors.New("run requires a job file")
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if cfg.MaxStates < 0 {
		return nil, errors.New("-max-states must not be negative")
	}
	return &cfg, nil
}
