package dfa

import "fmt"

// ErrInvalidInput indicates a matched text contains a byte outside the
// alphabet the DFA was compiled for.
var ErrInvalidInput = &DFAError{
	Kind:    InvalidInput,
	Message: "input symbol not in alphabet",
}

// ErrStateLimitExceeded indicates that determinization discovered more
// states than Config.MaxStates allows.
//
// This prevents unbounded memory growth for patterns whose subset
// construction explodes, such as .*A followed by many wildcards.
var ErrStateLimitExceeded = &DFAError{
	Kind:    StateLimitExceeded,
	Message: "DFA state limit exceeded",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
// This is caught before determinization starts.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrCorrupt indicates a serialized DFA could not be decoded.
var ErrCorrupt = &DFAError{
	Kind:    Corrupt,
	Message: "corrupt DFA encoding",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// InvalidInput indicates a match query used a non-alphabet symbol
	InvalidInput ErrorKind = iota

	// StateLimitExceeded indicates too many states were created
	StateLimitExceeded

	// InvalidConfig indicates configuration validation failed
	InvalidConfig

	// Corrupt indicates a malformed serialized DFA
	Corrupt
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case InvalidConfig:
		return "InvalidConfig"
	case Corrupt:
		return "Corrupt"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred during DFA operations
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func invalidInput(text string, offset int) *DFAError {
	return &DFAError{
		Kind:    InvalidInput,
		Message: fmt.Sprintf("input symbol %q at offset %d of %q not in alphabet", text[offset], offset, text),
	}
}

func corrupt(format string, args ...any) *DFAError {
	return &DFAError{
		Kind:    Corrupt,
		Message: "corrupt DFA encoding: " + fmt.Sprintf(format, args...),
	}
}
