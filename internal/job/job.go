// Package job loads batch files that describe many patterns to compile,
// count and match, and runs them concurrently.
//
// A job file is HCL:
//
//	locals {
//	  long = 10000000
//	}
//
//	modulus = 1000000007
//
//	pattern "no_bbb" {
//	  regex    = "(BB?)?(AA?BB?)*AAA+(BB?A+)*(BB?)?"
//	  alphabet = "AB"
//	  lengths  = [10, local.long]
//	  texts    = ["AAAB"]
//	}
//
// The top-level modulus applies to every pattern that does not set its own.
// A modulus of 0, or no modulus at all, counts exactly.
package job

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/coregx/tinydfa/internal/ctxlog"
)

// Job is a decoded job file.
type Job struct {
	// MaxStates overrides the DFA state limit when positive; zero keeps
	// the default and negative values are rejected by Parse
	MaxStates int
	Patterns  []*Pattern
}

// Pattern is one pattern block.
type Pattern struct {
	Name     string
	Regex    string
	Alphabet string
	Lengths  []uint64
	Texts    []string
	// Modulus is the effective modulus; 0 counts exactly
	Modulus uint64
}

// hclFile is the first decoding stage: locals are split off so they can be
// evaluated before anything that references them.
type hclFile struct {
	Locals []*hclLocalsBlock `hcl:"locals,block"`
	Remain hcl.Body          `hcl:",remain"`
}

type hclLocalsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type hclJob struct {
	Modulus   *uint64       `hcl:"modulus,optional"`
	MaxStates *int          `hcl:"max_states,optional"`
	Patterns  []*hclPattern `hcl:"pattern,block"`
}

type hclPattern struct {
	Name     string         `hcl:"name,label"`
	Regex    string         `hcl:"regex"`
	Alphabet string         `hcl:"alphabet"`
	Lengths  hcl.Expression `hcl:"lengths,optional"`
	Texts    []string       `hcl:"texts,optional"`
	Modulus  *uint64        `hcl:"modulus,optional"`
}

// Load parses and decodes the job file at path.
func Load(ctx context.Context, path string) (*Job, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading job file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse job file %s: %w", path, diags)
	}
	return decode(ctx, file.Body, path)
}

// Parse decodes a job from HCL source; filename is used in diagnostics only.
func Parse(ctx context.Context, src []byte, filename string) (*Job, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse job file %s: %w", filename, diags)
	}
	return decode(ctx, file.Body, filename)
}

func decode(ctx context.Context, body hcl.Body, filename string) (*Job, error) {
	logger := ctxlog.FromContext(ctx)

	var root hclFile
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode job file %s: %w", filename, diags)
	}

	locals, err := evalLocals(root.Locals)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate locals in %s: %w", filename, err)
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"local": cty.ObjectVal(locals)},
	}
	logger.Debug("Locals evaluated.", "count", len(locals))

	var raw hclJob
	if diags := gohcl.DecodeBody(root.Remain, evalCtx, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode job file %s: %w", filename, diags)
	}

	job := &Job{Patterns: make([]*Pattern, 0, len(raw.Patterns))}
	if raw.MaxStates != nil {
		if *raw.MaxStates < 0 {
			return nil, fmt.Errorf("max_states in %s must not be negative, got %d", filename, *raw.MaxStates)
		}
		job.MaxStates = *raw.MaxStates
	}
	var modulus uint64
	if raw.Modulus != nil {
		modulus = *raw.Modulus
	}

	seen := make(map[string]bool, len(raw.Patterns))
	for _, p := range raw.Patterns {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate pattern %q in %s", p.Name, filename)
		}
		seen[p.Name] = true

		lengths, err := decodeLengths(p.Lengths, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p.Name, err)
		}
		pat := &Pattern{
			Name:     p.Name,
			Regex:    p.Regex,
			Alphabet: p.Alphabet,
			Lengths:  lengths,
			Texts:    p.Texts,
			Modulus:  modulus,
		}
		if p.Modulus != nil {
			pat.Modulus = *p.Modulus
		}
		job.Patterns = append(job.Patterns, pat)
	}

	logger.Debug("Job decoded.", "patterns", len(job.Patterns))
	return job, nil
}

// evalLocals evaluates every attribute of every locals block. Locals may
// not reference each other.
func evalLocals(blocks []*hclLocalsBlock) (map[string]cty.Value, error) {
	locals := make(map[string]cty.Value)
	for _, block := range blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diags
		}
		for name, attr := range attrs {
			if _, dup := locals[name]; dup {
				return nil, fmt.Errorf("local %q defined more than once", name)
			}
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, diags
			}
			locals[name] = val
		}
	}
	return locals, nil
}

// decodeLengths converts the lengths expression to a list of numbers and
// decodes it. A missing attribute yields no lengths.
func decodeLengths(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]uint64, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	listType := cty.List(cty.Number)
	converted, err := convert.Convert(val, listType)
	if err != nil {
		return nil, fmt.Errorf("cannot convert lengths from %s to %s: %w",
			val.Type().FriendlyName(), listType.FriendlyName(), err)
	}
	var lengths []uint64
	if err := gocty.FromCtyValue(converted, &lengths); err != nil {
		return nil, fmt.Errorf("invalid lengths: %w", err)
	}
	return lengths, nil
}
