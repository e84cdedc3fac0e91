package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"strconv"

	"github.com/coregx/tinydfa"
	"github.com/coregx/tinydfa/dfa"
	"github.com/coregx/tinydfa/internal/conv"
	"github.com/coregx/tinydfa/internal/ctxlog"
	"github.com/coregx/tinydfa/internal/job"
	"github.com/coregx/tinydfa/ring"
)

// ErrRejected is returned by the match command when at least one text is
// not accepted, and by the run command when a job reports failures.
var ErrRejected = errors.New("rejected")

// App encapsulates the command's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp returns an App writing results to outW and logs to logW.
func NewApp(outW, logW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:   outW,
		logger: logger,
		config: config,
	}
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	switch a.config.Command {
	case CommandMatch:
		return a.match(ctx)
	case CommandCount:
		return a.count(ctx)
	case CommandCompile:
		return a.compile(ctx)
	case CommandRun:
		return a.runJob(ctx)
	default:
		return fmt.Errorf("unknown command %q", a.config.Command)
	}
}

// automaton compiles the configured pattern or loads the configured DFA file.
func (a *App) automaton(ctx context.Context) (*dfa.DFA, error) {
	logger := ctxlog.FromContext(ctx)
	if a.config.DFAPath != "" {
		f, err := os.Open(a.config.DFAPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open DFA file: %w", err)
		}
		defer f.Close()
		d, err := dfa.Load(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load DFA file %s: %w", a.config.DFAPath, err)
		}
		logger.Debug("DFA loaded.", "path", a.config.DFAPath, "states", d.States())
		return d, nil
	}

	config := tinydfa.DefaultConfig()
	if a.config.MaxStates > 0 {
		config = config.WithMaxStates(a.config.MaxStates)
	}
	re, err := tinydfa.CompileWithConfig(a.config.Regex, a.config.Alphabet, config)
	if err != nil {
		return nil, err
	}
	logger.Debug("Pattern compiled.", "pattern", re.Pattern(), "states", re.States())
	return re.DFA(), nil
}

func (a *App) match(ctx context.Context) error {
	d, err := a.automaton(ctx)
	if err != nil {
		return err
	}
	rejected := 0
	for _, text := range a.config.Texts {
		ok, err := d.Match(text)
		if err != nil {
			return err
		}
		if !ok {
			rejected++
		}
		fmt.Fprintf(a.outW, "%s\t%v\n", text, ok)
	}
	if rejected > 0 {
		return fmt.Errorf("%d of %d texts %w", rejected, len(a.config.Texts), ErrRejected)
	}
	return nil
}

func (a *App) count(ctx context.Context) error {
	d, err := a.automaton(ctx)
	if err != nil {
		return err
	}
	m := a.config.Modulus

	if a.config.HasLength {
		var n string
		if m == 0 {
			n = countOne[*big.Int](d, ring.Big{}, a.config.Length).String()
		} else {
			n = strconv.FormatUint(countOne[uint64](d, ring.MustMod(m), a.config.Length), 10)
		}
		fmt.Fprintf(a.outW, "%d\t%s\n", a.config.Length, n)
		return nil
	}

	if m == 0 {
		for l, n := range dfa.Count[*big.Int](d, ring.Big{}, a.config.Limit) {
			fmt.Fprintf(a.outW, "%d\t%s\n", l, n)
		}
		return nil
	}
	for l, n := range dfa.Count[uint64](d, ring.MustMod(m), a.config.Limit) {
		fmt.Fprintf(a.outW, "%d\t%d\n", l, n)
	}
	return nil
}

func (a *App) compile(ctx context.Context) error {
	d, err := a.automaton(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(a.config.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	a.logger.Info("DFA written.", "path", a.config.Output, "states", d.States(), "matchStates", d.MatchStates())
	return nil
}

func (a *App) runJob(ctx context.Context) error {
	j, err := job.Load(ctx, a.config.JobPath)
	if err != nil {
		return err
	}
	report, err := job.NewRunner(a.config.Workers).Execute(ctx, j)
	if err != nil {
		return fmt.Errorf("job execution failed: %w", err)
	}
	if err := report.Write(a.outW, a.config.Format); err != nil {
		return err
	}
	if report.Failed() {
		return fmt.Errorf("job %s had failures: %w", a.config.JobPath, ErrRejected)
	}
	return nil
}

// countOne counts the words of exactly length letters, running a linear
// pass instead of a matrix power when that needs fewer operations.
func countOne[T any](d *dfa.DFA, r ring.Semiring[T], length uint64) T {
	if limit, ok := conv.Uint64ToInt(length + 1); ok && dfa.PreferLinear(d, 1, length) {
		return dfa.Count[T](d, r, limit)[length]
	}
	return dfa.CountLength[T](d, r, length)
}
