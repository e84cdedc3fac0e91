package job

import (
	"context"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/coregx/tinydfa"
	"github.com/coregx/tinydfa/dfa"
	"github.com/coregx/tinydfa/internal/conv"
	"github.com/coregx/tinydfa/internal/ctxlog"
	"github.com/coregx/tinydfa/ring"
)

// Runner executes jobs.
type Runner struct {
	// Workers bounds the number of patterns processed at once
	Workers int
}

// NewRunner returns a runner with the given worker count; values below 1
// are raised to 1.
func NewRunner(workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{Workers: workers}
}

// Execute compiles every pattern of job and evaluates its lengths and texts.
//
// Patterns run concurrently but results keep file order. A pattern that
// fails to compile records the failure in its Result and does not stop the
// others. Execute only returns an error if ctx is canceled.
func (r *Runner) Execute(ctx context.Context, job *Job) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Starting job.", "patterns", len(job.Patterns), "workers", r.Workers)
	start := time.Now()

	config := tinydfa.DefaultConfig()
	if job.MaxStates > 0 {
		config = config.WithMaxStates(job.MaxStates)
	}

	results := make([]Result, len(job.Patterns))
	sem := make(chan struct{}, r.Workers)
	var wg sync.WaitGroup
	for i, p := range job.Patterns {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}
		wg.Add(1)
		go func(i int, p *Pattern) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = evaluate(ctx, p, config)
		}(i, p)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("Job finished.", "patterns", len(results), "elapsed", time.Since(start))
	return &Report{Results: results}, nil
}

func evaluate(ctx context.Context, p *Pattern, config tinydfa.Config) Result {
	ctx = ctxlog.With(ctx, "pattern", p.Name)
	logger := ctxlog.FromContext(ctx)
	res := Result{
		Name:     p.Name,
		Regex:    p.Regex,
		Alphabet: p.Alphabet,
		Modulus:  p.Modulus,
	}

	re, err := tinydfa.CompileWithConfig(p.Regex, p.Alphabet, config)
	if err != nil {
		logger.Warn("Compilation failed.", "error", err)
		res.Error = err.Error()
		return res
	}
	res.States = re.States()
	logger.Debug("Compiled.", "states", res.States)

	if len(p.Lengths) > 0 {
		res.Counts = countLengths(re, p.Lengths, p.Modulus)
	}
	for _, text := range p.Texts {
		m := TextMatch{Text: text}
		ok, err := re.Match(text)
		if err != nil {
			m.Error = err.Error()
		}
		m.Match = ok
		res.Matches = append(res.Matches, m)
	}
	return res
}

// countLengths counts every requested length, either with one linear pass
// up to the longest length or with a matrix power per length, whichever
// needs fewer operations.
func countLengths(re *tinydfa.Regex, lengths []uint64, modulus uint64) []LengthCount {
	var longest uint64
	for _, l := range lengths {
		longest = max(longest, l)
	}
	limit, fits := conv.Uint64ToInt(longest + 1)
	linear := fits && dfa.PreferLinear(re.DFA(), len(lengths), longest)

	counts := make([]LengthCount, len(lengths))
	if modulus == 0 {
		var all []*big.Int
		if linear {
			all = tinydfa.Count[*big.Int](re, ring.Big{}, limit)
		}
		for i, l := range lengths {
			var n *big.Int
			if linear {
				n = all[l]
			} else {
				n = tinydfa.CountLength[*big.Int](re, ring.Big{}, l)
			}
			counts[i] = LengthCount{Length: l, Count: n.String()}
		}
		return counts
	}

	r := ring.MustMod(modulus)
	var all []uint64
	if linear {
		all = tinydfa.Count[uint64](re, r, limit)
	}
	for i, l := range lengths {
		var n uint64
		if linear {
			n = all[l]
		} else {
			n = tinydfa.CountLength[uint64](re, r, l)
		}
		counts[i] = LengthCount{Length: l, Count: strconv.FormatUint(n, 10)}
	}
	return counts
}
