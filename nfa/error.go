// Package nfa builds the nondeterministic automata for the tinydfa pattern
// language.
//
// A pattern is compiled in two steps. BuildEpsilonNFA turns the pattern text
// into an epsilon-NFA whose nodes are pattern positions, and RemoveEpsilon
// folds the epsilon-closure into the labeled edges, producing an epsilon-free
// NFA ready for subset construction.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidPattern indicates the pattern or its alphabet is malformed
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrInvalidState indicates an out-of-range node ID was encountered
	ErrInvalidState = errors.New("invalid NFA state")
)

// PatternError reports where and why a pattern was rejected.
// It always unwraps to ErrInvalidPattern.
type PatternError struct {
	Pattern string
	Pos     int // byte offset into Pattern, -1 if not position specific
	Msg     string
}

// Error implements the error interface
func (e *PatternError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("invalid regex pattern %q at offset %d: %s", e.Pattern, e.Pos, e.Msg)
	}
	return fmt.Sprintf("invalid regex pattern %q: %s", e.Pattern, e.Msg)
}

// Unwrap returns ErrInvalidPattern
func (e *PatternError) Unwrap() error {
	return ErrInvalidPattern
}

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap returns ErrInvalidState
func (e *BuildError) Unwrap() error {
	return ErrInvalidState
}
